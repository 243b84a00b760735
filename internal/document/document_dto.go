package document

// SaveDocumentRequest is shared by create and update; the aggregate is
// always submitted whole.
type SaveDocumentRequest struct {
	// DocNumber is honored only for administrators assigning a number
	// manually; everyone else gets the allocated one.
	DocNumber string `json:"doc_number" binding:"omitempty,len=10,number"`

	DocDate    string `json:"doc_date" binding:"required,datetime=2006-01-02"`
	PartyName  string `json:"party_name" binding:"required"`
	DesignNo   string `json:"design_no"`
	DesignName string `json:"design_name"`
	Remarks    string `json:"remarks"`

	Lines     []LineRequest        `json:"lines" binding:"required,min=1,dive"`
	Processes []ProcessLineRequest `json:"processes" binding:"omitempty,dive"`
}

type LineRequest struct {
	LotNo   string   `json:"lot_no"`
	Color   string   `json:"color"`
	Weight  *float64 `json:"weight" binding:"omitempty,gte=0"`
	Rolls   *int     `json:"rolls" binding:"omitempty,gte=0"`
	Remarks string   `json:"remarks"`
}

type ProcessLineRequest struct {
	ProcessName string   `json:"process_name" binding:"required"`
	Rate        *float64 `json:"rate" binding:"omitempty,gte=0"`
	Amount      *float64 `json:"amount" binding:"omitempty,gte=0"`
}

type LineResponse struct {
	ID       string   `json:"id"`
	Revision int      `json:"revision"`
	LotNo    string   `json:"lot_no"`
	Color    string   `json:"color"`
	Weight   *float64 `json:"weight"`
	Rolls    *int     `json:"rolls"`
	Remarks  string   `json:"remarks,omitempty"`
	Deleted  bool     `json:"deleted,omitempty"`
}

type ProcessLineResponse struct {
	ID          string   `json:"id"`
	Revision    int      `json:"revision"`
	ProcessName string   `json:"process_name"`
	Rate        *float64 `json:"rate"`
	Amount      *float64 `json:"amount"`
	Deleted     bool     `json:"deleted,omitempty"`
}

type DocumentResponse struct {
	ID          string                `json:"id"`
	Series      string                `json:"series"`
	DocNumber   string                `json:"doc_number"`
	DocDate     string                `json:"doc_date"`
	PartyName   string                `json:"party_name"`
	DesignNo    string                `json:"design_no,omitempty"`
	DesignName  string                `json:"design_name,omitempty"`
	Remarks     string                `json:"remarks,omitempty"`
	TotalQty    float64               `json:"total_qty"`
	TotalRolls  int                   `json:"total_rolls"`
	TotalAmount float64               `json:"total_amount"`
	Revision    int                   `json:"revision"`
	CreatedBy   string                `json:"created_by"`
	ModifiedBy  string                `json:"modified_by,omitempty"`
	Lines       []LineResponse        `json:"lines,omitempty"`
	Processes   []ProcessLineResponse `json:"processes,omitempty"`
	CreatedAt   string                `json:"created_at"`
}

type NextNumberResponse struct {
	NextNumber string `json:"next_number"`
}

// Actor is the authenticated identity a handler passes down for audit
// stamps and admin-only overrides.
type Actor struct {
	UserID   string
	Username string
	IsAdmin  bool
}
