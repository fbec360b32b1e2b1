package content

import "github.com/SAP-F-2025/nova-scholar-service/internal/models"

var placementDrives = []models.PlacementDrive{
	{Company: "Google", Role: "SDE Intern", Date: "March 5, 2026", Location: "Bangalore, India", CGPA: "8.0+", Status: "upcoming", Logo: "G"},
	{Company: "Amazon", Role: "SDE-1", Date: "March 12, 2026", Location: "Hyderabad, India", CGPA: "7.0+", Status: "upcoming", Logo: "A"},
	{Company: "Microsoft", Role: "Software Engineer", Date: "March 20, 2026", Location: "Noida, India", CGPA: "7.5+", Status: "upcoming", Logo: "M"},
	{Company: "Flipkart", Role: "SDE Intern", Date: "Feb 28, 2026", Location: "Bangalore, India", CGPA: "7.0+", Status: "ongoing", Logo: "F"},
	{Company: "Infosys", Role: "Systems Engineer", Date: "Feb 10, 2026", Location: "Pune, India", CGPA: "6.0+", Status: "completed", Logo: "I"},
}

// PlacementDrives returns a copy of the drive board
func PlacementDrives() []models.PlacementDrive {
	return append([]models.PlacementDrive(nil), placementDrives...)
}
