package shopify

// Product statuses used by the maintenance operations. The remote store
// knows more statuses; anything that is not draft counts as visible for the
// stock-hide rule.
const (
	StatusActive = "active"
	StatusDraft  = "draft"
)

// Product is a read-only snapshot of a remote catalog product. Identifiers
// are assigned by the remote store and increase monotonically, which is what
// the since-id traversal relies on.
type Product struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Vendor   string    `json:"vendor"`
	BodyHTML string    `json:"body_html"`
	Status   string    `json:"status"`
	Variants []Variant `json:"variants"`
}

// Variant belongs to exactly one product. Price is a decimal carried as a
// string, as the remote API stores it.
type Variant struct {
	ID                  int64  `json:"id"`
	ProductID           int64  `json:"product_id"`
	Price               string `json:"price"`
	InventoryQuantity   *int   `json:"inventory_quantity"`
	InventoryManagement string `json:"inventory_management"`
}

// Tracked reports whether the variant's inventory quantity is authoritative.
func (v Variant) Tracked() bool {
	return v.InventoryManagement != ""
}

// Quantity returns the inventory quantity, treating an absent value as zero.
func (v Variant) Quantity() int {
	if v.InventoryQuantity == nil {
		return 0
	}
	return *v.InventoryQuantity
}

// ProductPatch is a partial product update. Nil fields are omitted from the
// request body so the remote store leaves them untouched.
type ProductPatch struct {
	ID       int64   `json:"id"`
	BodyHTML *string `json:"body_html,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// VariantPatch is a partial variant update.
type VariantPatch struct {
	ID    int64   `json:"id"`
	Price *string `json:"price,omitempty"`
}

// Wire envelopes. The remote API wraps every body in a resource-named key.
type productsPage struct {
	Products []Product `json:"products"`
}

type productEnvelope struct {
	Product ProductPatch `json:"product"`
}

type variantEnvelope struct {
	Variant VariantPatch `json:"variant"`
}
