package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/carefinder/hospital-finder/internal/application/services"
	"github.com/carefinder/hospital-finder/internal/domain/entities"
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "hospitalctl",
		Short:        "Search, compare and book hospitals from the terminal",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().Bool("json", false, "Print JSON instead of a table")

	rootCmd.AddCommand(searchCmd(a))
	rootCmd.AddCommand(showCmd(a))
	rootCmd.AddCommand(compareCmd(a))
	rootCmd.AddCommand(slotsCmd(a))
	rootCmd.AddCommand(bookCmd(a))
	return rootCmd
}

func searchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Filter and rank hospitals",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := searchRequestFromFlags(cmd)
			if err != nil {
				return err
			}
			result, err := a.search.Search(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON(cmd) {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeHospitals(cmd.OutOrStdout(), result.Hospitals)
		},
	}
	cmd.Flags().String("treatment", "", "Treatment to search for")
	cmd.Flags().String("location", "", "City or address to search in")
	cmd.Flags().Float64("min-price", 0, "Lowest price")
	cmd.Flags().Float64("max-price", services.DefaultPriceCeiling, "Highest price")
	cmd.Flags().Float64("min-rating", 0, "Lowest rating")
	cmd.Flags().StringSlice("type", nil, "Hospital types (Government, Private, Clinic)")
	cmd.Flags().String("sort", "rating", "Sort as field or field:direction (price, rating, distance, best_value)")
	cmd.Flags().String("near", "", "City to measure distance from")
	return cmd
}

func searchRequestFromFlags(cmd *cobra.Command) (services.SearchRequest, error) {
	flags := cmd.Flags()
	treatment, _ := flags.GetString("treatment")
	location, _ := flags.GetString("location")
	near, _ := flags.GetString("near")
	minPrice, _ := flags.GetFloat64("min-price")
	maxPrice, _ := flags.GetFloat64("max-price")
	minRating, _ := flags.GetFloat64("min-rating")
	typeNames, _ := flags.GetStringSlice("type")
	sortValue, _ := flags.GetString("sort")

	req := services.SearchRequest{
		Treatment: treatment,
		Location:  location,
		Near:      near,
	}
	if flags.Changed("min-price") || flags.Changed("max-price") {
		req.Filters.PriceRange = &entities.PriceRange{Min: minPrice, Max: maxPrice}
	}
	if flags.Changed("min-rating") {
		req.Filters.MinRating = &minRating
	}
	if len(typeNames) > 0 {
		types := make([]entities.HospitalType, 0, len(typeNames))
		for _, name := range typeNames {
			t, ok := entities.ParseHospitalType(name)
			if !ok {
				return req, fmt.Errorf("unknown hospital type %q", name)
			}
			types = append(types, t)
		}
		req.Filters.HospitalTypes = types
	}
	opt, err := entities.ParseSortOption(sortValue)
	if err != nil {
		return req, err
	}
	req.Sort = &opt
	return req, nil
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <hospital-id>",
		Short: "Show one hospital's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.provider.FetchHospitalByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON(cmd) {
				return writeJSON(cmd.OutOrStdout(), h)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Name:\t%s\n", h.Name)
			fmt.Fprintf(w, "Type:\t%s\n", h.Type)
			fmt.Fprintf(w, "Address:\t%s\n", h.Address)
			fmt.Fprintf(w, "Rating:\t%.1f\n", h.Rating)
			fmt.Fprintf(w, "Price:\t%.0f\n", h.Price)
			fmt.Fprintf(w, "Treatments:\t%s\n", h.TreatmentSummary())
			if len(h.Facilities) > 0 {
				fmt.Fprintf(w, "Facilities:\t%s\n", strings.Join(h.Facilities, ", "))
			}
			if h.Contact != "" {
				fmt.Fprintf(w, "Contact:\t%s\n", h.Contact)
			}
			return w.Flush()
		},
	}
}

func compareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <hospital-id> <hospital-id> [hospital-id]",
		Short: "Compare up to three hospitals side by side",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var hospitals []*entities.Hospital
			for _, id := range args {
				var err error
				if hospitals, err = a.comparison.AddByID(cmd.Context(), id); err != nil {
					return err
				}
			}

			if len(hospitals) < 2 {
				return fmt.Errorf("compare needs two different hospitals")
			}
			diff := services.CompareHospitals(hospitals[0], hospitals[1])
			if asJSON(cmd) {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"hospitals": hospitals,
					"diff":      diff,
				})
			}

			if err := writeHospitals(cmd.OutOrStdout(), hospitals); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%s vs %s\n", diff.Hospital1.Name, diff.Hospital2.Name)
			fmt.Fprintf(out, "Common treatments: %s\n", joinOrNone(diff.CommonTreatments))
			fmt.Fprintf(out, "Common facilities: %s\n", joinOrNone(diff.CommonFacilities))
			fmt.Fprintf(out, "Price difference:  %.0f\n", diff.PriceDifference)
			fmt.Fprintf(out, "Rating difference: %.1f\n", diff.RatingDifference)
			return nil
		},
	}
}

func slotsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots <hospital-id>",
		Short: "List free appointment slots on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			slots, err := a.bookings.AvailableSlots(cmd.Context(), args[0], date)
			if err != nil {
				return err
			}
			if asJSON(cmd) {
				return writeJSON(cmd.OutOrStdout(), slots)
			}
			fmt.Fprintln(cmd.OutOrStdout(), joinOrNone(slots))
			return nil
		},
	}
	cmd.Flags().String("date", "", "Date as YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func bookCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Request an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var form entities.BookingFormData
			form.Hospital, _ = flags.GetString("hospital")
			form.Name, _ = flags.GetString("name")
			form.Phone, _ = flags.GetString("phone")
			form.Email, _ = flags.GetString("email")
			form.Date, _ = flags.GetString("date")
			form.Time, _ = flags.GetString("time")
			form.Treatment, _ = flags.GetString("treatment")

			booking, err := a.bookings.Submit(cmd.Context(), form)
			if err != nil {
				return err
			}
			if asJSON(cmd) {
				return writeJSON(cmd.OutOrStdout(), booking)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booked %s at %s on %s %s (booking %s, %s)\n",
				booking.PatientName, booking.HospitalName, booking.Date, booking.Time, booking.ID, booking.Status)
			return nil
		},
	}
	cmd.Flags().String("hospital", "", "Hospital ID")
	cmd.Flags().String("name", "", "Patient name")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("date", "", "Date as YYYY-MM-DD")
	cmd.Flags().String("time", "", "Time slot as HH:MM")
	cmd.Flags().String("treatment", "", "Treatment")
	return cmd
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeHospitals(out io.Writer, hospitals []*entities.Hospital) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCITY\tTYPE\tRATING\tPRICE")
	for _, h := range hospitals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%.0f\n", h.ID, h.Name, h.City, h.Type, h.Rating, h.Price)
	}
	return w.Flush()
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
