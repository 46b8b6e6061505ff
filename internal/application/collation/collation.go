// Package collation ordena nombres como se esperan en castellano
// (acentos y ñ en su sitio, sin distinguir mayúsculas).
package collation

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

// New devuelve un collator nuevo. collate.Collator no es seguro entre goroutines.
func New() *collate.Collator {
	return collate.New(language.Spanish, collate.IgnoreCase)
}

// SortUsers ordena por nombre y, a igual nombre, por email.
func SortUsers(users []*entity.User) {
	c := New()
	sort.SliceStable(users, func(i, j int) bool {
		if r := c.CompareString(users[i].Name, users[j].Name); r != 0 {
			return r < 0
		}
		return users[i].Email < users[j].Email
	})
}

// Slug convierte un nombre en identificador: minúsculas, sin tildes, guiones.
// "Lavadero Nº 2" → "lavadero-n-2".
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
