// Package report renders a finished assessment as the plain text document handed to the agency.
package report

import (
	"github.com/swhawkins/LAPOK/internal/models"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	title      = "Oklahoma LAP Assessment Report"
	dateLayout = "1/2/2006"
	timeLayout = "3:04:05 PM"
)

// Format renders the officer report. It never fails: missing fields are rendered empty and questions are listed
// in ID order. Date and time are taken from now in its own location.
func Format(record models.CaseRecord, questions []models.Question, level models.DangerLevel, now time.Time) string {
	var b strings.Builder
	victim, suspect, officer, protocol := record.Victim, record.Suspect, record.Officer, record.Protocol

	b.WriteString(title + "\n\n")
	line(&b, "Date", now.Format(dateLayout))
	line(&b, "Time", now.Format(timeLayout))
	line(&b, "Agency", victim.Agency)
	line(&b, "Case Number", officer.CaseNumber)
	line(&b, "Officer", officer.FullName)
	line(&b, "Badge Number", officer.BadgeNumber)
	b.WriteString("\n")

	b.WriteString("Victim Information:\n")
	line(&b, "Name", victim.Name)
	line(&b, "Date of Birth", victim.DateOfBirth)
	line(&b, "Address", victim.Address)
	line(&b, "Phone", victim.Phone)
	line(&b, "Relationship to Suspect", victim.Relationship)
	b.WriteString("\n")

	b.WriteString("Suspect Information:\n")
	line(&b, "Name", suspect.Name)
	line(&b, "Date of Birth", suspect.DateOfBirth)
	line(&b, "Address", suspect.Address)
	line(&b, "Phone", suspect.Phone)
	line(&b, "Relationship to Victim", suspect.Relationship)
	b.WriteString("\n")

	line(&b, "Risk Level", level.Upper())
	b.WriteString("\n")

	b.WriteString("Questions Answered:\n")
	writeQuestions(&b, questions)
	b.WriteString("\n\n")

	b.WriteString("Additional Safety Concerns:\n")
	b.WriteString(protocol.AdditionalConcerns + "\n\n")

	b.WriteString("Screening Result:\n")
	b.WriteString(ScreeningSentence(protocol.ScreeningResult) + "\n\n")

	if protocol.ScreeningResult.ScreenedIn() {
		b.WriteString("Program Contact:\n")
		line(&b, "Contacted local OAG Certified DV/SA Program or Tribal DV/SA Program", yesNo(protocol.ContactedProgram))
		if !protocol.ContactedProgram {
			line(&b, "Reason for no contact", protocol.ContactReason)
		}
		line(&b, "Victim spoke with hotline advocate", yesNo(protocol.SpokeWithAdvocate))
		b.WriteString("\n")
	}

	b.WriteString("Assessment Result:\n")
	b.WriteString(Outcome(level))

	return b.String()
}

// FormatBrief renders the short report of the self-report question set: danger level and answers only.
func FormatBrief(questions []models.Question, level models.DangerLevel, now time.Time) string {
	var b strings.Builder
	b.WriteString(title + "\n\n")
	line(&b, "Date", now.Format(dateLayout))
	line(&b, "Time", now.Format(timeLayout))
	b.WriteString("\n")
	line(&b, "Danger Level", level.Upper())
	b.WriteString("\n")
	b.WriteString("Questions Answered:\n")
	writeQuestions(&b, questions)
	return b.String()
}

// Filename returns the download name of a report generated at now, dated in UTC.
func Filename(now time.Time) string {
	return "lap-assessment-" + now.UTC().Format(time.DateOnly) + ".txt"
}

// ScreeningSentence describes the screening result in the words of the program.
func ScreeningSentence(result models.ScreeningResult) string {
	switch result {
	case models.ScreeningProtocol:
		return "Victim screened in according to the protocol"
	case models.ScreeningOfficer:
		return "Victim screened in based on the belief of the officer"
	case models.ScreeningNone:
		return "Victim did not screen in"
	default:
		return "Victim did not screen in"
	}
}

// Outcome is the closing sentence of the report. Only a high danger level triggers the referral.
func Outcome(level models.DangerLevel) string {
	if level == models.DangerHigh {
		return "Protocol referral is triggered based on responses."
	}
	return "Protocol referral is not triggered based on responses."
}

func line(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func writeQuestions(b *strings.Builder, questions []models.Question) {
	sorted := slices.Clone(questions)
	slices.SortStableFunc(sorted, func(a, b models.Question) int { return a.ID - b.ID })
	for i, q := range sorted {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strconv.Itoa(q.ID))
		b.WriteString(". ")
		b.WriteString(q.Text)
		b.WriteString("\nAnswer: ")
		b.WriteString(q.Answer.Label())
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
