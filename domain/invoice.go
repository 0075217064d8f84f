package domain

// Invoice is the persisted invoice header. Party details are stored as
// denormalized columns, exactly as they arrive from the client.
type Invoice struct {
	ID             int64   `json:"id" db:"id"`
	UserID         int64   `json:"user_id" db:"user_id"`
	InvoiceNumber  string  `json:"invoice_number" db:"invoice_number"`
	InvoiceDate    string  `json:"invoice_date" db:"invoice_date"`
	DueDate        *string `json:"due_date" db:"due_date"`
	CompanyName    string  `json:"company_name" db:"company_name"`
	CompanyAddress string  `json:"company_address" db:"company_address"`
	CompanyEmail   string  `json:"company_email" db:"company_email"`
	CompanyPhone   string  `json:"company_phone" db:"company_phone"`
	ClientName     string  `json:"client_name" db:"client_name"`
	ClientAddress  string  `json:"client_address" db:"client_address"`
	ClientEmail    string  `json:"client_email" db:"client_email"`
	ClientPhone    string  `json:"client_phone" db:"client_phone"`
	Subtotal       float64 `json:"subtotal" db:"subtotal"`
	TaxRate        float64 `json:"tax_rate" db:"tax_rate"`
	TaxAmount      float64 `json:"tax_amount" db:"tax_amount"`
	TotalAmount    float64 `json:"total_amount" db:"total_amount"`
	Notes          string  `json:"notes" db:"notes"`
	Status         string  `json:"status" db:"status"`
	CreatedAt      string  `json:"created_at" db:"created_at"`
	UpdatedAt      string  `json:"updated_at" db:"updated_at"`
}

// InvoiceItem lives and dies with its invoice; updates replace the full
// item set rather than diffing.
type InvoiceItem struct {
	ID          int64   `json:"id" db:"id"`
	InvoiceID   int64   `json:"invoice_id" db:"invoice_id"`
	Description string  `json:"description" db:"description"`
	Quantity    float64 `json:"quantity" db:"quantity"`
	Price       float64 `json:"price" db:"price"`
	Total       float64 `json:"total" db:"total"`
}

// InvoiceSummary is a list-view row: the header plus an aggregated item
// count, no item rows loaded.
type InvoiceSummary struct {
	Invoice
	ItemCount int64 `json:"item_count" db:"item_count"`
}

// InvoiceWithItems is the detail-view shape.
type InvoiceWithItems struct {
	Invoice
	Items []InvoiceItem `json:"items"`
}

// InvoiceInput is the normalized payload accepted by create and update.
// Amounts are stored as submitted; the server does not recompute them.
type InvoiceInput struct {
	InvoiceNumber  string
	InvoiceDate    string
	DueDate        *string
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string
	ClientName     string
	ClientAddress  string
	ClientEmail    string
	ClientPhone    string
	Items          []ItemInput
	Subtotal       float64
	TaxRate        float64
	TaxAmount      float64
	TotalAmount    float64
	Notes          string
	Status         string
}

type ItemInput struct {
	Description string
	Quantity    float64
	Price       float64
	Total       float64
}
