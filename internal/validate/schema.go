// Package validate checks ticket drafts against a declarative field
// schema. Every rule is evaluated independently so a single pass
// reports all violated fields together; the engine has no side effects
// and never touches the store.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/awoyaledolapo/clytix-1/internal/models"
)

// Errors maps a field name to a human-readable message. Only fields
// currently failing validation are present; an empty map means valid.
type Errors map[string]string

func (e Errors) OK() bool { return len(e) == 0 }

// Rule checks a single string value and returns a message, or "" when
// the value passes.
type Rule func(value string) string

// Field binds a named form field to its constraint list.
type Field struct {
	Name  string
	Rules []Rule
}

// Schema is an ordered set of fields. Check evaluates every rule of
// every field and records the first failing message per field.
type Schema []Field

func (s Schema) Check(values map[string]string) Errors {
	errs := Errors{}
	for _, f := range s {
		v := values[f.Name]
		for _, r := range f.Rules {
			if msg := r(v); msg != "" {
				errs[f.Name] = msg
				break
			}
		}
	}
	return errs
}

// --- rules ---

func Required(msg string) Rule {
	return func(v string) string {
		if v == "" {
			return msg
		}
		return ""
	}
}

// MaxLen limits the length in characters, not bytes.
func MaxLen(n int, msg string) Rule {
	return func(v string) string {
		if utf8.RuneCountInString(v) > n {
			return msg
		}
		return ""
	}
}

func OneOf(msg string, allowed ...string) Rule {
	return func(v string) string {
		for _, a := range allowed {
			if v == a {
				return ""
			}
		}
		return msg
	}
}

// Optional skips the wrapped rule when the value is empty.
func Optional(r Rule) Rule {
	return func(v string) string {
		if v == "" {
			return ""
		}
		return r(v)
	}
}

// ticketSchema mirrors the product's form rules: title is trimmed and
// mandatory, status is mandatory, description and priority optional.
var ticketSchema = Schema{
	{Name: "title", Rules: []Rule{
		Required("Title is required"),
		MaxLen(200, "Title must be less than 200 characters"),
	}},
	{Name: "status", Rules: []Rule{
		Required("Status is required"),
		OneOf("Status must be open, in_progress, or closed",
			string(models.StatusOpen), string(models.StatusInProgress), string(models.StatusClosed)),
	}},
	{Name: "description", Rules: []Rule{
		Optional(MaxLen(1000, "Description must be less than 1000 characters")),
	}},
	{Name: "priority", Rules: []Rule{
		Optional(OneOf("Priority must be low, medium, or high",
			string(models.PriorityLow), string(models.PriorityMedium), string(models.PriorityHigh))),
	}},
}

// Ticket validates a draft. It returns the normalized draft (title and
// description trimmed, other fields untouched) and the per-field
// errors. The draft is only safe to persist when errs.OK().
func Ticket(d models.Draft) (models.Draft, Errors) {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)

	errs := ticketSchema.Check(map[string]string{
		"title":       d.Title,
		"status":      string(d.Status),
		"description": d.Description,
		"priority":    string(d.Priority),
	})
	return d, errs
}
