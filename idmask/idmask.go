package idmask

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/metrics"
)

const (
	ActionMask   = "mask"
	ActionUnmask = "unmask"
)

// Store keeps the two way mapping between identifiers and the tokens issued for them.
type Store interface {
	Lookup(ctx context.Context, id int64) (string, bool, error)
	Resolve(ctx context.Context, token string) (int64, bool, error)
	Save(ctx context.Context, id int64, token string, ttl time.Duration) error
}

// Masker hides record identifiers behind opaque tokens. Tokens carry no information about the identifier
// and can only be resolved while the store remembers them.
type Masker struct {
	store   Store
	ttl     time.Duration
	metrics *metrics.Metrics
}

func New(store Store, ttl time.Duration, m *metrics.Metrics) *Masker {
	return &Masker{store: store, ttl: ttl, metrics: m}
}

// Mask returns the token of id, issuing a new one when none is remembered.
func (m *Masker) Mask(ctx context.Context, id int64) (string, error) {

	if id <= 0 {
		return "", errors.ValidationFailedError.New("id must be a positive integer")
	}

	token, ok, err := m.store.Lookup(ctx, id)
	if err != nil {
		m.metrics.MaskOperation(ActionMask, "failed")
		return "", errors.IDMaskFailedError.New(err)
	}

	if ok {
		m.metrics.MaskOperation(ActionMask, "reused")
		return token, nil
	}

	token = ksuid.New().String()
	if err := m.store.Save(ctx, id, token, m.ttl); err != nil {

		slog.Error("saving masked id failed", "error", err)
		m.metrics.MaskOperation(ActionMask, "failed")
		return "", errors.IDMaskFailedError.New(err)
	}

	m.metrics.MaskOperation(ActionMask, "issued")
	return token, nil
}

// Unmask resolves a token issued by Mask.
func (m *Masker) Unmask(ctx context.Context, token string) (int64, error) {

	if _, err := ksuid.Parse(token); err != nil {
		m.metrics.MaskOperation(ActionUnmask, "unknown")
		return 0, errors.IDMaskTokenNotFoundError.New(token)
	}

	id, ok, err := m.store.Resolve(ctx, token)
	if err != nil {
		m.metrics.MaskOperation(ActionUnmask, "failed")
		return 0, errors.IDMaskFailedError.New(err)
	}

	if !ok {
		m.metrics.MaskOperation(ActionUnmask, "unknown")
		return 0, errors.IDMaskTokenNotFoundError.New(token)
	}

	m.metrics.MaskOperation(ActionUnmask, "resolved")
	return id, nil
}

// MaskString masks an identifier given as text, as it arrives from forms and query strings.
func (m *Masker) MaskString(ctx context.Context, raw string) (string, error) {

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", errors.ValidationFailedError.New("id must be a positive integer")
	}

	return m.Mask(ctx, id)
}
