package catalog

import "github.com/carefinder/hospital-finder/internal/domain/entities"

func facilities(speciality string) []string {
	return []string{"ICU", "Operation Theater", speciality, "Emergency Care", "Pharmacy", "Cafeteria"}
}

// sampleHospitals is the built-in development catalog. Coordinates are approximate.
func sampleHospitals() []*entities.Hospital {
	return []*entities.Hospital{
		{
			ID:         "1",
			Name:       "Apollo Hospital",
			Address:    "Greams Road, Chennai",
			City:       "Chennai",
			Type:       entities.HospitalTypePrivate,
			Rating:     4.5,
			Price:      5000,
			Treatments: []string{"Cardiology", "Orthopedics", "Neurosciences", "Oncology", "Pediatrics", "Gynecology"},
			Facilities: facilities("Diagnostic Center"),
			Contact:    "+91-1234567890",
			Email:      "info@apollo.com",
			Location:   &entities.Location{Latitude: 13.0604, Longitude: 80.2496},
		},
		{
			ID:         "2",
			Name:       "AIIMS",
			Address:    "Ansari Nagar, New Delhi",
			City:       "Delhi",
			Type:       entities.HospitalTypeGovernment,
			Rating:     4.7,
			Price:      2000,
			Treatments: []string{"Cardiology", "Neurology", "Orthopedics", "Pediatrics", "Gynecology", "Dermatology"},
			Facilities: facilities("Research Center"),
			Contact:    "+91-2345678901",
			Email:      "info@aiims.edu",
			Location:   &entities.Location{Latitude: 28.5672, Longitude: 77.2100},
		},
		{
			ID:         "3",
			Name:       "Fortis Hospital",
			Address:    "Bannerghatta Road, Bangalore",
			City:       "Bangalore",
			Type:       entities.HospitalTypePrivate,
			Rating:     4.3,
			Price:      6000,
			Treatments: []string{"Cardiology", "Oncology", "Neurology", "Orthopedics", "Pediatrics", "Dermatology"},
			Facilities: facilities("Cancer Center"),
			Contact:    "+91-3456789012",
			Email:      "info@fortis.com",
			Location:   &entities.Location{Latitude: 12.8950, Longitude: 77.5983},
		},
		{
			ID:         "4",
			Name:       "Medanta",
			Address:    "Sector 38, Gurgaon",
			City:       "Delhi",
			Type:       entities.HospitalTypePrivate,
			Rating:     4.6,
			Price:      7000,
			Treatments: []string{"Orthopedics", "Cardiology", "Neurology", "Oncology", "Pediatrics", "Gynecology"},
			Facilities: facilities("Rehabilitation Center"),
			Contact:    "+91-4567890123",
			Email:      "info@medanta.org",
			Location:   &entities.Location{Latitude: 28.4395, Longitude: 77.0402},
		},
		{
			ID:         "5",
			Name:       "Lilavati Hospital",
			Address:    "Bandra West, Mumbai",
			City:       "Mumbai",
			Type:       entities.HospitalTypePrivate,
			Rating:     4.4,
			Price:      8000,
			Treatments: []string{"Neurology", "Cardiology", "Orthopedics", "Oncology", "Pediatrics", "Dermatology"},
			Facilities: facilities("Stroke Unit"),
			Contact:    "+91-5678901234",
			Email:      "info@lilavatihospital.com",
			Location:   &entities.Location{Latitude: 19.0509, Longitude: 72.8294},
		},
		{
			ID:         "6",
			Name:       "Manipal Hospital",
			Address:    "Old Airport Road, Bangalore",
			City:       "Bangalore",
			Type:       entities.HospitalTypePrivate,
			Rating:     4.2,
			Price:      9000,
			Treatments: []string{"Oncology", "Cardiology", "Neurology", "Orthopedics", "Pediatrics", "Gynecology"},
			Facilities: facilities("Cancer Center"),
			Contact:    "+91-6789012345",
			Email:      "info@manipalhospitals.com",
			Location:   &entities.Location{Latitude: 12.9592, Longitude: 77.6489},
		},
		{
			ID:         "7",
			Name:       "Government General Hospital",
			Address:    "Park Town, Chennai",
			City:       "Chennai",
			Type:       entities.HospitalTypeGovernment,
			Rating:     4.0,
			Price:      1000,
			Treatments: []string{"Dialysis", "General Medicine", "Pediatrics", "Gynecology", "Orthopedics", "Dermatology"},
			Facilities: facilities("Dialysis Unit"),
			Contact:    "+91-7890123456",
			Email:      "info@gghospital.gov.in",
			Location:   &entities.Location{Latitude: 13.0803, Longitude: 80.2770},
		},
		{
			ID:         "8",
			Name:       "Columbia Asia",
			Address:    "Yeshwanthpur, Bangalore",
			City:       "Bangalore",
			Type:       entities.HospitalTypePrivate,
			Rating:     4.1,
			Price:      5500,
			Treatments: []string{"Orthopedics", "Cardiology", "Neurology", "Oncology", "Pediatrics", "Gynecology"},
			Facilities: facilities("Sports Medicine"),
			Contact:    "+91-8901234567",
			Email:      "info@columbiaasia.com",
			Location:   &entities.Location{Latitude: 13.0268, Longitude: 77.5390},
		},
		{
			ID:         "9",
			Name:       "Max Healthcare",
			Address:    "Saket, New Delhi",
			City:       "Delhi",
			Type:       entities.HospitalTypePrivate,
			Rating:     4.3,
			Price:      5500,
			Treatments: []string{"Cardiology", "Neurology", "Orthopedics", "Oncology", "Pediatrics", "Gynecology"},
			Facilities: facilities("Heart Institute"),
			Contact:    "+91-9012345678",
			Email:      "info@maxhealthcare.com",
			Location:   &entities.Location{Latitude: 28.5275, Longitude: 77.2110},
		},
		{
			ID:         "10",
			Name:       "Tata Memorial Hospital",
			Address:    "Parel, Mumbai",
			City:       "Mumbai",
			Type:       entities.HospitalTypeGovernment,
			Rating:     4.8,
			Price:      3000,
			Treatments: []string{"Oncology", "Radiation Therapy", "Surgical Oncology", "Cardiology", "Pediatrics", "Gynecology"},
			Facilities: facilities("Cancer Research Center"),
			Contact:    "+91-0123456789",
			Email:      "info@tmc.gov.in",
			Location:   &entities.Location{Latitude: 19.0040, Longitude: 72.8430},
		},
	}
}
