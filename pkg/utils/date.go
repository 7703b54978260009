package utils

import "time"

// MonthKey formata a chave de balde mensal (yyyy-MM)
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}

// MonthName formata o rótulo curto de um mês (ex: "Jan 2024")
func MonthName(date time.Time) string {
	return date.Format("Jan 2006")
}

// MonthLongName formata o rótulo longo de um mês (ex: "January 2024")
func MonthLongName(date time.Time) string {
	return date.Format("January 2006")
}

// WeekKey formata a chave de um ponto semanal (yyyy-MM-dd)
func WeekKey(date time.Time) string {
	return date.Format("2006-01-02")
}

// ShortDate formata a data curta dos gráficos (ex: "Jan 2")
func ShortDate(date time.Time) string {
	return date.Format("Jan 2")
}

// FullDate formata a data completa dos gráficos (ex: "Jan 2, 2025")
func FullDate(date time.Time) string {
	return date.Format("Jan 2, 2006")
}
