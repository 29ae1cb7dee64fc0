package restaurant

import "time"

// LegalPage is a static document rendered as-is by the client. Content
// ships with the binary; legal reviews land as deployments, not edits.
type LegalPage struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

var legalPages = map[string]LegalPage{
	"terms": {
		Slug:      "terms",
		Title:     "Terms of Service",
		UpdatedAt: time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
		Body: `Welcome to MealMesh. By creating an account or placing an order you
agree to these terms.

1. The platform connects customers, restaurants and couriers; MealMesh is
not a party to the sale of food itself.
2. Restaurants are responsible for the accuracy of their menus and the
preparation of orders. Couriers are responsible for timely delivery.
3. Payments are processed at order time. Refunds follow the complaint
process available from your account screen.
4. Accounts that abuse the platform, including fraudulent orders or
ratings, may be suspended without notice.
5. These terms may change; continued use after a change constitutes
acceptance.`,
	},
	"privacy": {
		Slug:      "privacy",
		Title:     "Privacy Policy",
		UpdatedAt: time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
		Body: `MealMesh stores the data needed to operate the marketplace: your
account details, order history, delivery addresses and the ratings you
give and receive.

Email addresses are stored encrypted and are never shared with
restaurants or couriers. Order details are shared only with the parties
fulfilling your order. Support conversations are retained to handle
complaints and improve the service.

You can request an export or deletion of your data from your account
screen. Deletion requests are honored within 30 days, except where we
are legally required to retain records.`,
	},
}

// LegalPageBySlug returns the static page for a slug, or nil when no
// such page exists.
func LegalPageBySlug(slug string) *LegalPage {
	if page, ok := legalPages[slug]; ok {
		return &page
	}
	return nil
}
