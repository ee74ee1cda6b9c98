// Package currency formats monetary amounts for display and resolves a
// user's preferred display currency.
package currency

import (
	"context"
	"strings"
)

// Info describes a supported display currency.
type Info struct {
	Code   string // ISO 4217
	Name   string
	Symbol string
	Flag   string
}

// Table is the swappable currency reference set, keyed by ISO code. It is
// data, not logic: corrections and additions never touch the formatter.
type Table map[string]Info

// DefaultTable returns the currencies the application ships with.
func DefaultTable() Table {
	return Table{
		"USD": {Code: "USD", Name: "US Dollar", Symbol: "$", Flag: "🇺🇸"},
		"EUR": {Code: "EUR", Name: "Euro", Symbol: "€", Flag: "🇪🇺"},
		"GBP": {Code: "GBP", Name: "British Pound", Symbol: "£", Flag: "🇬🇧"},
		"JPY": {Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Flag: "🇯🇵"},
		"THB": {Code: "THB", Name: "Thai Baht", Symbol: "฿", Flag: "🇹🇭"},
		"SGD": {Code: "SGD", Name: "Singapore Dollar", Symbol: "S$", Flag: "🇸🇬"},
		"INR": {Code: "INR", Name: "Indian Rupee", Symbol: "₹", Flag: "🇮🇳"},
		"CNY": {Code: "CNY", Name: "Chinese Yuan", Symbol: "¥", Flag: "🇨🇳"},
		"AUD": {Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Flag: "🇦🇺"},
		"CAD": {Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", Flag: "🇨🇦"},
		"CHF": {Code: "CHF", Name: "Swiss Franc", Symbol: "CHF ", Flag: "🇨🇭"},
		"BRL": {Code: "BRL", Name: "Brazilian Real", Symbol: "R$", Flag: "🇧🇷"},
		"KRW": {Code: "KRW", Name: "South Korean Won", Symbol: "₩", Flag: "🇰🇷"},
	}
}

// LocaleMap maps BCP 47 locale tags to a default currency. Like Table it is
// swappable data.
type LocaleMap map[string]string

// DefaultLocaleMap returns the shipped locale to currency mapping.
func DefaultLocaleMap() LocaleMap {
	return LocaleMap{
		"en-US": "USD",
		"en-GB": "GBP",
		"en-AU": "AUD",
		"en-CA": "CAD",
		"en-SG": "SGD",
		"de-DE": "EUR",
		"fr-FR": "EUR",
		"es-ES": "EUR",
		"it-IT": "EUR",
		"ja-JP": "JPY",
		"th-TH": "THB",
		"hi-IN": "INR",
		"zh-CN": "CNY",
		"pt-BR": "BRL",
		"ko-KR": "KRW",
		"de-CH": "CHF",
	}
}

// PreferenceStore persists the user's explicit currency choice. The zero
// value of a lookup is the empty string when nothing is stored.
type PreferenceStore interface {
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID, code string) error
}

// Resolver resolves a user's preferred display currency:
// stored preference, then locale mapping, then USD.
type Resolver struct {
	table   Table
	locales LocaleMap
	prefs   PreferenceStore
}

// NewResolver creates a Resolver. prefs may be nil when no preference
// storage is configured.
func NewResolver(table Table, locales LocaleMap, prefs PreferenceStore) *Resolver {
	return &Resolver{table: table, locales: locales, prefs: prefs}
}

// Preferred resolves the display currency for a user and locale. The lookup
// never fails: unknown locales and store errors fall through to USD.
func (r *Resolver) Preferred(ctx context.Context, userID, locale string) string {
	if r.prefs != nil && userID != "" {
		if code, err := r.prefs.Get(ctx, userID); err == nil && code != "" {
			if _, ok := r.table[code]; ok {
				return code
			}
		}
	}

	if code, ok := r.locales[normalizeLocale(locale)]; ok {
		return code
	}

	return "USD"
}

// normalizeLocale canonicalizes tags like "en_us" to "en-US".
func normalizeLocale(locale string) string {
	locale = strings.ReplaceAll(locale, "_", "-")
	lang, region, found := strings.Cut(locale, "-")
	if !found {
		return strings.ToLower(locale)
	}
	return strings.ToLower(lang) + "-" + strings.ToUpper(region)
}
