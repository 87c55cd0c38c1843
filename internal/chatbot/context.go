package chatbot

import (
	"fmt"
	"sort"
	"strings"

	"hospital-gin/internal/models"
)

// HistoryLimit is how many medical records go into the prompt.
const HistoryLimit = 3

// recentHistory returns the patient's latest records, newest visit first.
// Visits on the same day fall back to the higher id.
func recentHistory(records []models.MedicalRecord, patientID, limit int) []models.MedicalRecord {
	var mine []models.MedicalRecord
	for _, r := range records {
		if r.PatientID == patientID {
			mine = append(mine, r)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		if mine[i].VisitDate != mine[j].VisitDate {
			return mine[i].VisitDate > mine[j].VisitDate
		}
		return mine[i].ID > mine[j].ID
	})
	if len(mine) > limit {
		mine = mine[:limit]
	}
	return mine
}

// buildUserPrompt renders the patient context followed by the question.
func buildUserPrompt(patient *models.Patient, history []models.MedicalRecord, departments []models.Department, message string) string {
	var b strings.Builder

	if patient != nil {
		b.WriteString("Patient:\n")
		fmt.Fprintf(&b, "- Name: %s %s\n", patient.FirstName, patient.LastName)
		if patient.DateOfBirth != "" {
			fmt.Fprintf(&b, "- Date of birth: %s\n", patient.DateOfBirth)
		}
		if patient.Gender != "" {
			fmt.Fprintf(&b, "- Gender: %s\n", patient.Gender)
		}
		b.WriteString("\n")
	}

	if len(history) > 0 {
		b.WriteString("Recent medical history:\n")
		for _, r := range history {
			fmt.Fprintf(&b, "- %s: %s", r.VisitDate, r.Diagnosis)
			if r.Treatment != "" {
				fmt.Fprintf(&b, " (treatment: %s)", r.Treatment)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Departments:\n")
	for _, d := range departments {
		fmt.Fprintf(&b, "- %s\n", d.Name)
	}

	b.WriteString("\nPatient message:\n")
	b.WriteString(message)
	return b.String()
}

// ExtractDepartments returns the departments whose name appears in text,
// ignoring case, in the order of the department list.
func ExtractDepartments(text string, departments []models.Department) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, d := range departments {
		if d.Name != "" && strings.Contains(lower, strings.ToLower(d.Name)) {
			found = append(found, d.Name)
		}
	}
	return found
}
