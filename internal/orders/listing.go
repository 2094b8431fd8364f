package orders

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/and161185/bookdesk/internal/model"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	AllStatuses  = "All"
)

// Query describes one page of the admin order table.
type Query struct {
	Search string
	Status string
	Page   int
	Limit  int
}

type Page struct {
	Orders []model.Order `json:"orders"`
	Total  int           `json:"total"`
	Page   int           `json:"page"`
	Pages  int           `json:"pages"`
	Limit  int           `json:"limit"`
}

// ParseQuery reads search, status, page and limit with sane defaults.
func ParseQuery(values url.Values) Query {
	q := Query{
		Search: strings.TrimSpace(values.Get("search")),
		Status: strings.TrimSpace(values.Get("status")),
		Page:   parseInt(values.Get("page"), 1),
		Limit:  parseInt(values.Get("limit"), DefaultLimit),
	}
	return q.normalized()
}

func (q Query) normalized() Query {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Apply filters, then slices the list. The input order is preserved.
func Apply(list []model.Order, q Query) Page {
	q = q.normalized()

	filtered := make([]model.Order, 0, len(list))
	for _, o := range list {
		if matchesStatus(o, q.Status) && matchesSearch(o, q.Search) {
			filtered = append(filtered, o)
		}
	}

	total := len(filtered)
	pages := (total + q.Limit - 1) / q.Limit

	offset := total
	if q.Page-1 <= total/q.Limit {
		offset = min((q.Page-1)*q.Limit, total)
	}
	end := min(offset+q.Limit, total)

	return Page{
		Orders: filtered[offset:end],
		Total:  total,
		Page:   q.Page,
		Pages:  pages,
		Limit:  q.Limit,
	}
}

func matchesStatus(o model.Order, status string) bool {
	if status == "" || strings.EqualFold(status, AllStatuses) {
		return true
	}
	return strings.EqualFold(string(o.Status), status)
}

func matchesSearch(o model.Order, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range []string{o.Customer.Name, o.Customer.Phone, o.OrderID, o.ID, o.Address} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
