package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fareops/catalog-engine/pkg/apperrors"
	"github.com/fareops/catalog-engine/pkg/models"
	"github.com/fareops/catalog-engine/pkg/query"
)

// The repository mocks below are map-backed fakes. Listing calls record the
// filter they were handed and return canned results; lifecycle flips mirror
// the conditional-update semantics of the real repositories, so a flip to the
// state the row is already in reports ErrConflict.

func flipDeleted[T interface{ IsDeleted() bool }](rows map[uuid.UUID]T, id uuid.UUID, deleted bool, set func(T, bool)) error {
	row, ok := rows[id]
	if !ok || row.IsDeleted() == deleted {
		return apperrors.ErrConflict
	}
	set(row, deleted)
	return nil
}

type countryRepoMock struct {
	rows       map[uuid.UUID]*models.Country
	paged      []*models.Country
	total      int
	lastFilter *query.Filter
	lastOrder  query.Order
	lastPage   query.PageRequest
}

func newCountryRepoMock() *countryRepoMock {
	return &countryRepoMock{rows: make(map[uuid.UUID]*models.Country)}
}

func (m *countryRepoMock) add(c *models.Country) *models.Country {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.rows[c.ID] = c
	return c
}

func (m *countryRepoMock) Create(_ context.Context, c *models.Country) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	m.rows[c.ID] = c
	return nil
}

func (m *countryRepoMock) Update(_ context.Context, c *models.Country) error {
	row, ok := m.rows[c.ID]
	if !ok || row.Deleted {
		return apperrors.ErrNotFound
	}
	m.rows[c.ID] = c
	return nil
}

func (m *countryRepoMock) GetActiveByID(_ context.Context, id uuid.UUID) (*models.Country, error) {
	row, ok := m.rows[id]
	if !ok || row.Deleted {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *countryRepoMock) GetByIDIncludingDeleted(_ context.Context, id uuid.UUID) (*models.Country, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *countryRepoMock) PagedFind(_ context.Context, f *query.Filter, order query.Order, page query.PageRequest) ([]*models.Country, int, error) {
	m.lastFilter, m.lastOrder, m.lastPage = f, order, page
	return m.paged, m.total, nil
}

func (m *countryRepoMock) SetDeleted(_ context.Context, id uuid.UUID, deleted bool) error {
	return flipDeleted(m.rows, id, deleted, func(c *models.Country, d bool) { c.Deleted = d })
}

type airlineRepoMock struct {
	rows       map[uuid.UUID]*models.Airline
	paged      []*models.Airline
	total      int
	lastFilter *query.Filter
}

func newAirlineRepoMock() *airlineRepoMock {
	return &airlineRepoMock{rows: make(map[uuid.UUID]*models.Airline)}
}

func (m *airlineRepoMock) add(a *models.Airline) *models.Airline {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.rows[a.ID] = a
	return a
}

func (m *airlineRepoMock) Create(_ context.Context, a *models.Airline) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	m.rows[a.ID] = a
	return nil
}

func (m *airlineRepoMock) Update(_ context.Context, a *models.Airline) error {
	row, ok := m.rows[a.ID]
	if !ok || row.Deleted {
		return apperrors.ErrNotFound
	}
	m.rows[a.ID] = a
	return nil
}

func (m *airlineRepoMock) GetActiveByID(_ context.Context, id uuid.UUID) (*models.Airline, error) {
	row, ok := m.rows[id]
	if !ok || row.Deleted {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *airlineRepoMock) GetByIDIncludingDeleted(_ context.Context, id uuid.UUID) (*models.Airline, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *airlineRepoMock) PagedFind(_ context.Context, f *query.Filter, _ query.Order, _ query.PageRequest) ([]*models.Airline, int, error) {
	m.lastFilter = f
	return m.paged, m.total, nil
}

func (m *airlineRepoMock) SetDeleted(_ context.Context, id uuid.UUID, deleted bool) error {
	return flipDeleted(m.rows, id, deleted, func(a *models.Airline, d bool) { a.Deleted = d })
}

func (m *airlineRepoMock) ExistsActiveByCountry(_ context.Context, countryID uuid.UUID) (bool, error) {
	for _, a := range m.rows {
		if !a.Deleted && a.CountryID == countryID {
			return true, nil
		}
	}
	return false, nil
}

type aircraftRepoMock struct {
	rows map[uuid.UUID]*models.Aircraft
}

func newAircraftRepoMock() *aircraftRepoMock {
	return &aircraftRepoMock{rows: make(map[uuid.UUID]*models.Aircraft)}
}

func (m *aircraftRepoMock) add(a *models.Aircraft) *models.Aircraft {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.rows[a.ID] = a
	return a
}

func (m *aircraftRepoMock) Create(_ context.Context, a *models.Aircraft) error {
	a.ID = uuid.New()
	m.rows[a.ID] = a
	return nil
}

func (m *aircraftRepoMock) Update(_ context.Context, a *models.Aircraft) error {
	row, ok := m.rows[a.ID]
	if !ok || row.Deleted {
		return apperrors.ErrNotFound
	}
	m.rows[a.ID] = a
	return nil
}

func (m *aircraftRepoMock) GetActiveByID(_ context.Context, id uuid.UUID) (*models.Aircraft, error) {
	row, ok := m.rows[id]
	if !ok || row.Deleted {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *aircraftRepoMock) GetByIDIncludingDeleted(_ context.Context, id uuid.UUID) (*models.Aircraft, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *aircraftRepoMock) PagedFind(_ context.Context, _ *query.Filter, _ query.Order, _ query.PageRequest) ([]*models.Aircraft, int, error) {
	return nil, 0, nil
}

func (m *aircraftRepoMock) SetDeleted(_ context.Context, id uuid.UUID, deleted bool) error {
	return flipDeleted(m.rows, id, deleted, func(a *models.Aircraft, d bool) { a.Deleted = d })
}

func (m *aircraftRepoMock) ExistsActiveByAirline(_ context.Context, airlineID uuid.UUID) (bool, error) {
	for _, a := range m.rows {
		if !a.Deleted && a.AirlineID == airlineID {
			return true, nil
		}
	}
	return false, nil
}

type fareBasisCodeRepoMock struct {
	rows map[uuid.UUID]*models.FareBasisCode
}

func newFareBasisCodeRepoMock() *fareBasisCodeRepoMock {
	return &fareBasisCodeRepoMock{rows: make(map[uuid.UUID]*models.FareBasisCode)}
}

func (m *fareBasisCodeRepoMock) add(c *models.FareBasisCode) *models.FareBasisCode {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.rows[c.ID] = c
	return c
}

func (m *fareBasisCodeRepoMock) Create(_ context.Context, c *models.FareBasisCode) error {
	c.ID = uuid.New()
	m.rows[c.ID] = c
	return nil
}

func (m *fareBasisCodeRepoMock) Update(_ context.Context, c *models.FareBasisCode) error {
	row, ok := m.rows[c.ID]
	if !ok || row.Deleted {
		return apperrors.ErrNotFound
	}
	m.rows[c.ID] = c
	return nil
}

func (m *fareBasisCodeRepoMock) GetActiveByID(_ context.Context, id uuid.UUID) (*models.FareBasisCode, error) {
	row, ok := m.rows[id]
	if !ok || row.Deleted {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *fareBasisCodeRepoMock) GetByIDIncludingDeleted(_ context.Context, id uuid.UUID) (*models.FareBasisCode, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *fareBasisCodeRepoMock) ExistsActive(_ context.Context, id uuid.UUID) (bool, error) {
	row, ok := m.rows[id]
	return ok && !row.Deleted, nil
}

func (m *fareBasisCodeRepoMock) PagedFind(_ context.Context, _ *query.Filter, _ query.Order, _ query.PageRequest) ([]*models.FareBasisCode, int, error) {
	return nil, 0, nil
}

func (m *fareBasisCodeRepoMock) SetDeleted(_ context.Context, id uuid.UUID, deleted bool) error {
	return flipDeleted(m.rows, id, deleted, func(c *models.FareBasisCode, d bool) { c.Deleted = d })
}

func (m *fareBasisCodeRepoMock) ExistsActiveByAirline(_ context.Context, airlineID uuid.UUID) (bool, error) {
	for _, c := range m.rows {
		if !c.Deleted && c.AirlineID == airlineID {
			return true, nil
		}
	}
	return false, nil
}

type ancillaryProductRepoMock struct {
	rows map[uuid.UUID]*models.AncillaryProduct
}

func newAncillaryProductRepoMock() *ancillaryProductRepoMock {
	return &ancillaryProductRepoMock{rows: make(map[uuid.UUID]*models.AncillaryProduct)}
}

func (m *ancillaryProductRepoMock) add(p *models.AncillaryProduct) *models.AncillaryProduct {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.rows[p.ID] = p
	return p
}

func (m *ancillaryProductRepoMock) Create(_ context.Context, p *models.AncillaryProduct) error {
	p.ID = uuid.New()
	m.rows[p.ID] = p
	return nil
}

func (m *ancillaryProductRepoMock) Update(_ context.Context, p *models.AncillaryProduct) error {
	row, ok := m.rows[p.ID]
	if !ok || row.Deleted {
		return apperrors.ErrNotFound
	}
	m.rows[p.ID] = p
	return nil
}

func (m *ancillaryProductRepoMock) GetActiveByID(_ context.Context, id uuid.UUID) (*models.AncillaryProduct, error) {
	row, ok := m.rows[id]
	if !ok || row.Deleted {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *ancillaryProductRepoMock) GetByIDIncludingDeleted(_ context.Context, id uuid.UUID) (*models.AncillaryProduct, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *ancillaryProductRepoMock) ExistsActive(_ context.Context, id uuid.UUID) (bool, error) {
	row, ok := m.rows[id]
	return ok && !row.Deleted, nil
}

func (m *ancillaryProductRepoMock) PagedFind(_ context.Context, _ *query.Filter, _ query.Order, _ query.PageRequest) ([]*models.AncillaryProduct, int, error) {
	return nil, 0, nil
}

func (m *ancillaryProductRepoMock) SetDeleted(_ context.Context, id uuid.UUID, deleted bool) error {
	return flipDeleted(m.rows, id, deleted, func(p *models.AncillaryProduct, d bool) { p.Deleted = d })
}

type contextAttributesRepoMock struct {
	rows map[uuid.UUID]*models.ContextAttributes
}

func newContextAttributesRepoMock() *contextAttributesRepoMock {
	return &contextAttributesRepoMock{rows: make(map[uuid.UUID]*models.ContextAttributes)}
}

func (m *contextAttributesRepoMock) add(a *models.ContextAttributes) *models.ContextAttributes {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.rows[a.ID] = a
	return a
}

func (m *contextAttributesRepoMock) Create(_ context.Context, a *models.ContextAttributes) error {
	a.ID = uuid.New()
	m.rows[a.ID] = a
	return nil
}

func (m *contextAttributesRepoMock) Update(_ context.Context, a *models.ContextAttributes) error {
	row, ok := m.rows[a.ID]
	if !ok || row.Deleted {
		return apperrors.ErrNotFound
	}
	m.rows[a.ID] = a
	return nil
}

func (m *contextAttributesRepoMock) GetActiveByID(_ context.Context, id uuid.UUID) (*models.ContextAttributes, error) {
	row, ok := m.rows[id]
	if !ok || row.Deleted {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *contextAttributesRepoMock) GetByIDIncludingDeleted(_ context.Context, id uuid.UUID) (*models.ContextAttributes, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *contextAttributesRepoMock) ExistsActive(_ context.Context, id uuid.UUID) (bool, error) {
	row, ok := m.rows[id]
	return ok && !row.Deleted, nil
}

func (m *contextAttributesRepoMock) PagedFind(_ context.Context, _ *query.Filter, _ query.Order, _ query.PageRequest) ([]*models.ContextAttributes, int, error) {
	return nil, 0, nil
}

func (m *contextAttributesRepoMock) SetDeleted(_ context.Context, id uuid.UUID, deleted bool) error {
	return flipDeleted(m.rows, id, deleted, func(a *models.ContextAttributes, d bool) { a.Deleted = d })
}

type priceOfferRepoMock struct {
	rows       map[uuid.UUID]*models.PriceOfferLog
	quotes     []decimal.Decimal
	lastFilter *query.Filter
}

func newPriceOfferRepoMock() *priceOfferRepoMock {
	return &priceOfferRepoMock{rows: make(map[uuid.UUID]*models.PriceOfferLog)}
}

func (m *priceOfferRepoMock) add(rec *models.PriceOfferLog) *models.PriceOfferLog {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.rows[rec.ID] = rec
	return rec
}

func (m *priceOfferRepoMock) Create(_ context.Context, rec *models.PriceOfferLog) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now().UTC()
	m.rows[rec.ID] = rec
	return nil
}

func (m *priceOfferRepoMock) GetActiveByID(_ context.Context, id uuid.UUID) (*models.PriceOfferLog, error) {
	row, ok := m.rows[id]
	if !ok || row.Deleted {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *priceOfferRepoMock) GetByIDIncludingDeleted(_ context.Context, id uuid.UUID) (*models.PriceOfferLog, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *priceOfferRepoMock) PagedFind(_ context.Context, f *query.Filter, _ query.Order, _ query.PageRequest) ([]*models.PriceOfferLog, int, error) {
	m.lastFilter = f
	return nil, 0, nil
}

func (m *priceOfferRepoMock) SetDeleted(_ context.Context, id uuid.UUID, deleted bool) error {
	return flipDeleted(m.rows, id, deleted, func(rec *models.PriceOfferLog, d bool) { rec.Deleted = d })
}

func (m *priceOfferRepoMock) ListQuotes(_ context.Context, f *query.Filter) ([]decimal.Decimal, error) {
	m.lastFilter = f
	return m.quotes, nil
}

func (m *priceOfferRepoMock) ExistsActiveByFareBasisCode(_ context.Context, id uuid.UUID) (bool, error) {
	for _, rec := range m.rows {
		if !rec.Deleted && rec.FareBasisCodeID != nil && *rec.FareBasisCodeID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *priceOfferRepoMock) ExistsActiveByAncillaryProduct(_ context.Context, id uuid.UUID) (bool, error) {
	for _, rec := range m.rows {
		if !rec.Deleted && rec.AncillaryProductID != nil && *rec.AncillaryProductID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *priceOfferRepoMock) ExistsActiveByContextAttributes(_ context.Context, id uuid.UUID) (bool, error) {
	for _, rec := range m.rows {
		if !rec.Deleted && rec.ContextAttributesID == id {
			return true, nil
		}
	}
	return false, nil
}

type userRepoMock struct {
	rows map[uuid.UUID]*models.User
}

func newUserRepoMock() *userRepoMock {
	return &userRepoMock{rows: make(map[uuid.UUID]*models.User)}
}

func (m *userRepoMock) add(u *models.User) *models.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.rows[u.ID] = u
	return u
}

func (m *userRepoMock) Create(_ context.Context, u *models.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	m.rows[u.ID] = u
	return nil
}

func (m *userRepoMock) Update(_ context.Context, u *models.User) error {
	row, ok := m.rows[u.ID]
	if !ok || row.Deleted {
		return apperrors.ErrNotFound
	}
	m.rows[u.ID] = u
	return nil
}

func (m *userRepoMock) GetActiveByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	row, ok := m.rows[id]
	if !ok || row.Deleted {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *userRepoMock) GetByIDIncludingDeleted(_ context.Context, id uuid.UUID) (*models.User, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func (m *userRepoMock) PagedFind(_ context.Context, _ *query.Filter, _ query.Order, _ query.PageRequest) ([]*models.User, int, error) {
	return nil, 0, nil
}

func (m *userRepoMock) SetDeleted(_ context.Context, id uuid.UUID, deleted bool) error {
	return flipDeleted(m.rows, id, deleted, func(u *models.User, d bool) { u.Deleted = d })
}

func (m *userRepoMock) ExistsActiveByAirline(_ context.Context, airlineID uuid.UUID) (bool, error) {
	for _, u := range m.rows {
		if !u.Deleted && u.AirlineID != nil && *u.AirlineID == airlineID {
			return true, nil
		}
	}
	return false, nil
}
