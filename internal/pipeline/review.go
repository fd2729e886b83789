package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"foliogate/internal/domain"
)

// ApplyEdit sets one field of d from raw user input. The field's previous
// error is cleared first, then the field is re-validated. Quantity and
// price edits recompute amount = |quantity × price| unless the row is a
// dividend, whose amount is entered directly.
func ApplyEdit(d *domain.TransactionDraft, fileIndex int, field domain.Field, raw string, errs ErrorMap, now time.Time) error {
	if !domain.EditableFields[field] {
		return fmt.Errorf("%w: %q", domain.ErrInvalidField, field)
	}
	key := domain.ValidationKey{FileIndex: fileIndex, RowID: d.ID, Field: field}
	errs.Clear(key)
	value := strings.TrimSpace(raw)

	switch field {
	case domain.FieldSymbol:
		d.Symbol = strings.ToUpper(value)
	case domain.FieldTradeType:
		d.TradeType = domain.TradeType(value)
		// A rejected quantity or price was never stored, so its parse error
		// stands until the field itself is edited again.
		if !hasMessage(errs, fileIndex, d.ID, domain.FieldQuantity, msgQuantityNaN) {
			revalidate(d, fileIndex, domain.FieldQuantity, d.Quantity.String(), errs, now)
		}
		if !hasMessage(errs, fileIndex, d.ID, domain.FieldPrice, msgPriceNaN) {
			revalidate(d, fileIndex, domain.FieldPrice, d.Price.String(), errs, now)
		}
		recomputeAmount(d)
	case domain.FieldQuantity:
		if msg := ValidateQuantity(d.TradeType, value); msg != "" {
			errs.Set(key, msg)
		}
		if q, err := decimal.NewFromString(value); err == nil {
			d.Quantity = q
			recomputeAmount(d)
		}
	case domain.FieldPrice:
		if msg := ValidatePrice(d.TradeType, value); msg != "" {
			errs.Set(key, msg)
		}
		if p, err := decimal.NewFromString(value); err == nil {
			d.Price = p
			recomputeAmount(d)
		}
	case domain.FieldAmount:
		a, err := decimal.NewFromString(value)
		if err != nil {
			errs.Set(key, "Amount must be a number")
			break
		}
		d.Amount = a
	case domain.FieldDate:
		if msg := ValidateDate(value, now); msg != "" {
			errs.Set(key, msg)
			d.Date = value
			break
		}
		t, _ := ParseDate(value)
		d.Date = t.Format("2006-01-02")
	case domain.FieldBroker:
		d.Broker = value
	case domain.FieldCurrency:
		d.Currency = strings.ToUpper(value)
	case domain.FieldNotes:
		d.Notes = raw
	case domain.FieldExchange:
		d.Exchange = strings.ToUpper(value)
	}
	return nil
}

func revalidate(d *domain.TransactionDraft, fileIndex int, field domain.Field, raw string, errs ErrorMap, now time.Time) {
	key := domain.ValidationKey{FileIndex: fileIndex, RowID: d.ID, Field: field}
	errs.Clear(key)
	if v := DefaultRegistry.Get(field); v != nil {
		if msg := v(d, raw, now); msg != "" {
			errs.Set(key, msg)
		}
	}
}

func hasMessage(errs ErrorMap, fileIndex int, rowID string, field domain.Field, msg string) bool {
	got, ok := errs.Get(domain.ValidationKey{FileIndex: fileIndex, RowID: rowID, Field: field})
	return ok && got == msg
}

func recomputeAmount(d *domain.TransactionDraft) {
	if d.TradeType.IsDividends() {
		return
	}
	d.Amount = d.Quantity.Mul(d.Price).Abs()
}

// ReviewView is what the review screen shows for one file. An errored file
// yields an empty Rows list and its extraction error.
type ReviewView struct {
	FileIndex        int                       `json:"file_index"`
	File             domain.UploadedFile       `json:"file"`
	Status           domain.FileStatus         `json:"status"`
	Error            string                    `json:"error,omitempty"`
	Rows             []domain.TransactionDraft `json:"rows"`
	Excluded         []string                  `json:"excluded"`
	ValidationErrors []domain.ValidationError  `json:"validation_errors"`
	AcceptedCount    int                       `json:"accepted_count"`
	PreviewURL       string                    `json:"preview_url,omitempty"`
}

// Review builds the review view of one file.
func (s *State) Review(index int) (*ReviewView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.files) {
		return nil, domain.ErrFileIndexOutOfRange
	}
	f := s.files[index]
	if f.Cleared {
		return nil, domain.ErrFileCleared
	}
	view := &ReviewView{
		FileIndex:        index,
		File:             f.File,
		Status:           f.Status,
		Error:            f.Error,
		Rows:             append([]domain.TransactionDraft{}, f.Drafts...),
		Excluded:         []string{},
		ValidationErrors: s.errs.ListFile(index),
	}
	for _, d := range f.Drafts {
		if f.Excluded[d.ID] {
			view.Excluded = append(view.Excluded, d.ID)
		}
	}
	view.AcceptedCount = len(s.acceptedRows(index))
	return view, nil
}

// EditField edits one field of one extracted row and returns the updated
// row with its current errors.
func (s *State) EditField(index int, rowID string, field domain.Field, raw string) (*domain.TransactionDraft, []domain.ValidationError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.draft(index, rowID)
	if err != nil {
		return nil, nil, err
	}
	if err := ApplyEdit(d, index, field, raw, s.errs, s.now()); err != nil {
		return nil, nil, err
	}
	row := *d
	return &row, rowErrors(s.errs, index, rowID), nil
}

// ExcludeRow drops a row from the next import of its file.
func (s *State) ExcludeRow(index int, rowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.draft(index, rowID); err != nil {
		return err
	}
	f := &s.files[index]
	if f.Excluded == nil {
		f.Excluded = make(map[string]bool)
	}
	f.Excluded[rowID] = true
	return nil
}

// draft must be called with mu held.
func (s *State) draft(index int, rowID string) (*domain.TransactionDraft, error) {
	if index < 0 || index >= len(s.files) {
		return nil, domain.ErrFileIndexOutOfRange
	}
	f := &s.files[index]
	if f.Cleared {
		return nil, domain.ErrFileCleared
	}
	if f.Status != domain.FileStatusCompleted {
		return nil, domain.ErrFileNotCompleted
	}
	for i := range f.Drafts {
		if f.Drafts[i].ID == rowID {
			return &f.Drafts[i], nil
		}
	}
	return nil, domain.ErrRowNotFound
}

// acceptedRows must be called with mu held.
func (s *State) acceptedRows(index int) []domain.TransactionDraft {
	f := s.files[index]
	var rows []domain.TransactionDraft
	for _, d := range f.Drafts {
		if f.Excluded[d.ID] || s.errs.RowHasErrors(index, d.ID) {
			continue
		}
		rows = append(rows, d)
	}
	return rows
}

func rowErrors(errs ErrorMap, fileIndex int, rowID string) []domain.ValidationError {
	out := []domain.ValidationError{}
	for _, e := range errs.ListFile(fileIndex) {
		if e.RowID == rowID {
			out = append(out, e)
		}
	}
	return out
}
