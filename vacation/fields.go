/*
fields.go - Template-field mapper for the vacation request document

PURPOSE:
  Maps an employee profile, a balance snapshot and a request into the flat
  named-field set the document template expects. The mapping is a pure
  function: no I/O, no input mutation, identical inputs produce identical
  field sets.

FORMATTING:
  All dates render in Mexican Spanish. Short form is day/month/year
  ("06/01/2025"); the requested-dates list spells each date out in full
  words ("lunes 6 de enero de 2025").

FALLBACKS (never fail on missing data):
  Full name:   first+last -> display name -> "Nombre no disponible"
  Position:    title -> position -> "N/A"
  Registry id: registry field -> raw user id -> "N/A"
  Balances:    first non-nil of the alias pair, else 0
*/
package vacation

import (
	"fmt"
	"strings"
	"time"
)

// Profile is the employee snapshot fed to the mapper. Fields mirror what
// the intranet profile lookup returns; any of them may be empty.
type Profile struct {
	ID          string
	FirstName   string
	LastName    string
	DisplayName string
	Title       string
	Position    string
	RegistryID  string
	Email       string
}

// Balance is a read-only vacation balance snapshot. The taken/used and
// remaining/available pairs are aliases; the first non-nil of each pair
// wins, defaulting to zero.
type Balance struct {
	Available *float64
	Taken     *float64
	Used      *float64
	Remaining *float64
}

// TemplateFields is the flat, purely-derived field set for one render call.
// It is never persisted.
type TemplateFields struct {
	FullName       string
	Position       string
	RegistryID     string
	RequestDate    string
	StartDate      string
	EndDate        string
	WorkingDays    string
	RequestedDates string
	Reason         string
	DaysTaken      string
	DaysRemaining  string
}

const nameUnavailable = "Nombre no disponible"

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

// FormatShort renders a date as day/month/year.
func FormatShort(d Date) string { return d.Format("02/01/2006") }

// FormatLong renders a date in full Spanish words: "lunes 6 de enero de 2025".
func FormatLong(d Date) string {
	return fmt.Sprintf("%s %d de %s de %d",
		spanishWeekdays[d.Weekday()], d.Day(), spanishMonths[d.Month()-time.January], d.Year())
}

// MapTemplateFields derives the template field set for one request.
func MapTemplateFields(profile Profile, balance Balance, req Request) TemplateFields {
	days := ListWorkingDays(req.StartDate, req.EndDate)
	longDays := make([]string, len(days))
	for i, d := range days {
		longDays[i] = FormatLong(d)
	}

	return TemplateFields{
		FullName:       fullName(profile),
		Position:       firstNonEmpty(profile.Title, profile.Position, "N/A"),
		RegistryID:     firstNonEmpty(profile.RegistryID, profile.ID, "N/A"),
		RequestDate:    FormatShort(req.SubmittedOn),
		StartDate:      FormatShort(req.StartDate),
		EndDate:        FormatShort(req.EndDate),
		WorkingDays:    fmt.Sprintf("%d", len(days)),
		RequestedDates: strings.Join(longDays, ", "),
		Reason:         strings.TrimSpace(req.Reason),
		DaysTaken:      formatBalance(balance.Taken, balance.Used),
		DaysRemaining:  formatBalance(balance.Remaining, balance.Available),
	}
}

// Placeholders returns the token-to-value map consumed by the renderer.
// Token names match the placeholders inside the shipped template.
func (f TemplateFields) Placeholders() map[string]string {
	return map[string]string{
		"NOMBRE_COMPLETO":    f.FullName,
		"PUESTO":             f.Position,
		"ID_REGISTRO":        f.RegistryID,
		"FECHA_SOLICITUD":    f.RequestDate,
		"FECHA_INICIO":       f.StartDate,
		"FECHA_FIN":          f.EndDate,
		"DIAS_SOLICITADOS":   f.WorkingDays,
		"FECHAS_SOLICITADAS": f.RequestedDates,
		"MOTIVO":             f.Reason,
		"DIAS_TOMADOS":       f.DaysTaken,
		"DIAS_RESTANTES":     f.DaysRemaining,
	}
}

func fullName(p Profile) string {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if name != "" {
		return name
	}
	if display := strings.TrimSpace(p.DisplayName); display != "" {
		return display
	}
	return nameUnavailable
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func formatBalance(primary, alias *float64) string {
	v := 0.0
	switch {
	case primary != nil:
		v = *primary
	case alias != nil:
		v = *alias
	}
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
