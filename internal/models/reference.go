package models

import "time"

// TimeLayout is the timestamp format stored on every record.
const TimeLayout = "2006-01-02 15:04:05"

// Now renders the current time in TimeLayout.
func Now() string {
	return time.Now().Format(TimeLayout)
}

type Department struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (d Department) GetID() int { return d.ID }

type Medication struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Manufacturer string `json:"manufacturer"`
}

func (m Medication) GetID() int { return m.ID }

// SeedDepartments is written to an empty departments collection.
var SeedDepartments = []Department{
	{ID: 1, Name: "Cardiology", Location: "Building A, Floor 2"},
	{ID: 2, Name: "Neurology", Location: "Building B, Floor 1"},
	{ID: 3, Name: "Orthopedics", Location: "Building A, Floor 3"},
	{ID: 4, Name: "Pediatrics", Location: "Building C, Floor 1"},
	{ID: 5, Name: "General Medicine", Location: "Building A, Floor 1"},
}

// SeedMedications is written to an empty medications collection.
var SeedMedications = []Medication{
	{ID: 1, Name: "Aspirin", Description: "Pain reliever and anti-inflammatory", Manufacturer: "Bayer"},
	{ID: 2, Name: "Amoxicillin", Description: "Antibiotic", Manufacturer: "GlaxoSmithKline"},
	{ID: 3, Name: "Lisinopril", Description: "ACE inhibitor for blood pressure", Manufacturer: "Merck"},
	{ID: 4, Name: "Metformin", Description: "Diabetes medication", Manufacturer: "Bristol-Myers Squibb"},
	{ID: 5, Name: "Ibuprofen", Description: "NSAID pain reliever", Manufacturer: "Advil"},
}
