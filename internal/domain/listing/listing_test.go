package listing

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmolista/backend/internal/domain/shared"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

var (
	now      = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	duration = 30 * 24 * time.Hour
)

func priceFixture(t *testing.T) valueobject.Price {
	t.Helper()
	return valueobject.MustNewPrice(decimal.NewFromInt(250_000), valueobject.PEN)
}

func mediaFixture(t *testing.T, urls ...string) valueobject.PhotoGallery {
	t.Helper()
	g, err := valueobject.NewPhotoGallery(urls, valueobject.ListingMaxPhotos)
	require.NoError(t, err)
	return g
}

func draftFixture(t *testing.T) Listing {
	t.Helper()
	l, err := NewListing(NewListingID(),
		"Departamento en Miraflores",
		"Amplio departamento de 3 dormitorios con vista al parque y cochera.",
		priceFixture(t), nil, mediaFixture(t, "https://cdn.example.com/a.jpg"), now)
	require.NoError(t, err)
	return l
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusPaymentPending, true},
		{StatusDraft, StatusActive, true},
		{StatusDraft, StatusDeactivated, true},
		{StatusDraft, StatusExpired, false},
		{StatusPaymentPending, StatusActive, true},
		{StatusPaymentPending, StatusDraft, true},
		{StatusActive, StatusExpired, true},
		{StatusActive, StatusDraft, true},
		{StatusActive, StatusPaymentPending, false},
		{StatusExpired, StatusDeactivated, true},
		{StatusExpired, StatusActive, false},
		{StatusDeactivated, StatusDraft, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusDraft.IsEditable())
	assert.True(t, StatusActive.IsEditable())
	assert.False(t, StatusPaymentPending.IsEditable())

	assert.True(t, StatusDraft.NeedsPayment())
	assert.True(t, StatusPaymentPending.NeedsPayment())
	assert.False(t, StatusActive.NeedsPayment())

	assert.Equal(t, "Pago pendiente", StatusPaymentPending.Label())
	assert.Equal(t, "Publicado", StatusActive.Label())
}

func TestNewListing(t *testing.T) {
	t.Run("creates draft without timestamps", func(t *testing.T) {
		l := draftFixture(t)

		assert.Equal(t, StatusDraft, l.Status())
		assert.Nil(t, l.PublishedAt())
		assert.Nil(t, l.ExpiresAt())
		assert.False(t, l.IsSearchable(now))
		assert.True(t, l.NeedsPayment())
	})

	t.Run("trims title and description", func(t *testing.T) {
		l, err := NewListing(NewListingID(), "  Casa en Surco  ",
			"  Casa con jardín y tres dormitorios amplios.  ",
			priceFixture(t), nil, mediaFixture(t), now)
		require.NoError(t, err)
		assert.Equal(t, "Casa en Surco", l.Title())
	})

	t.Run("collects every violated rule", func(t *testing.T) {
		_, err := NewListing("", "abc", "corto", valueobject.Price{}, nil, mediaFixture(t), now)
		require.Error(t, err)

		ve, ok := shared.AsValidationError(err)
		require.True(t, ok)
		assert.Len(t, ve.Violations, 4)
	})

	t.Run("enforces length ceilings", func(t *testing.T) {
		_, err := NewListing(NewListingID(), strings.Repeat("t", 101),
			strings.Repeat("d", 2001), priceFixture(t), nil, mediaFixture(t), now)
		require.Error(t, err)

		ve, ok := shared.AsValidationError(err)
		require.True(t, ok)
		assert.Len(t, ve.Violations, 2)
	})
}

func TestListingActivation(t *testing.T) {
	t.Run("activation stamps the publication window exactly", func(t *testing.T) {
		active, err := draftFixture(t).Activate(now, duration)
		require.NoError(t, err)

		assert.Equal(t, StatusActive, active.Status())
		require.NotNil(t, active.PublishedAt())
		require.NotNil(t, active.ExpiresAt())
		assert.Equal(t, now, *active.PublishedAt())
		assert.Equal(t, now.Add(duration), *active.ExpiresAt())
	})

	t.Run("searchability follows the window", func(t *testing.T) {
		active, err := draftFixture(t).Activate(now, duration)
		require.NoError(t, err)

		assert.True(t, active.IsSearchable(now))
		assert.True(t, active.IsSearchable(now.Add(duration))) // inclusive boundary
		assert.False(t, active.IsSearchable(now.Add(duration+time.Second)))
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		_, err := draftFixture(t).Activate(now, 0)
		assert.Error(t, err)
	})

	t.Run("expired listing cannot be reactivated", func(t *testing.T) {
		active, err := draftFixture(t).Activate(now, duration)
		require.NoError(t, err)
		expired, err := active.Expire(now.Add(duration + time.Hour))
		require.NoError(t, err)

		_, err = expired.Activate(now, duration)
		assert.Error(t, err)
	})
}

func TestListingExpiry(t *testing.T) {
	active, err := draftFixture(t).Activate(now, duration)
	require.NoError(t, err)

	t.Run("expires only after the window closes", func(t *testing.T) {
		_, err := active.Expire(now.Add(duration))
		assert.Error(t, err)

		expired, err := active.Expire(now.Add(duration + time.Second))
		require.NoError(t, err)
		assert.Equal(t, StatusExpired, expired.Status())
	})

	t.Run("draft cannot expire", func(t *testing.T) {
		_, err := draftFixture(t).Expire(now)
		assert.Error(t, err)
	})
}

func TestRevertToDraft(t *testing.T) {
	t.Run("clears publication timestamps and keeps content", func(t *testing.T) {
		original := draftFixture(t)
		pending, err := original.MarkAwaitingPayment(now)
		require.NoError(t, err)

		reverted, err := pending.RevertToDraft(now.Add(time.Minute))
		require.NoError(t, err)

		assert.Equal(t, StatusDraft, reverted.Status())
		assert.Nil(t, reverted.PublishedAt())
		assert.Nil(t, reverted.ExpiresAt())
		assert.Equal(t, original.Title(), reverted.Title())
		assert.Equal(t, original.Description(), reverted.Description())
		assert.True(t, original.Price().Equals(reverted.Price()))
		assert.True(t, original.Media().Equals(reverted.Media()))
	})

	t.Run("deactivated listing cannot revert", func(t *testing.T) {
		deactivated, err := draftFixture(t).Deactivate(now)
		require.NoError(t, err)

		_, err = deactivated.RevertToDraft(now)
		assert.Error(t, err)
	})
}

func TestMarkAwaitingPayment(t *testing.T) {
	pending, err := draftFixture(t).MarkAwaitingPayment(now)
	require.NoError(t, err)
	assert.Equal(t, StatusPaymentPending, pending.Status())

	_, err = pending.MarkAwaitingPayment(now)
	assert.Error(t, err)
}

func TestWithContent(t *testing.T) {
	t.Run("edits draft content and revalidates", func(t *testing.T) {
		l := draftFixture(t)

		edited, err := l.WithContent("Departamento remodelado",
			"Departamento remodelado con acabados de primera y cochera doble.",
			priceFixture(t), nil, mediaFixture(t, "https://cdn.example.com/b.jpg"), now.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, "Departamento remodelado", edited.Title())
		assert.Equal(t, l.CreatedAt(), edited.CreatedAt())
		assert.Equal(t, now.Add(time.Hour), edited.UpdatedAt())

		_, err = l.WithContent("abc", "corto", priceFixture(t), nil, mediaFixture(t), now)
		assert.Error(t, err)
	})

	t.Run("active listing keeps its window through an edit", func(t *testing.T) {
		active, err := draftFixture(t).Activate(now, duration)
		require.NoError(t, err)

		edited, err := active.WithContent("Departamento actualizado",
			"Se actualizaron las fotos y la descripción del inmueble.",
			priceFixture(t), nil, mediaFixture(t), now.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, StatusActive, edited.Status())
		assert.Equal(t, *active.ExpiresAt(), *edited.ExpiresAt())
	})

	t.Run("payment_pending listing rejects edits", func(t *testing.T) {
		pending, err := draftFixture(t).MarkAwaitingPayment(now)
		require.NoError(t, err)

		_, err = pending.WithContent("Nuevo título válido",
			"Descripción suficientemente larga para pasar validación.",
			priceFixture(t), nil, mediaFixture(t), now)
		assert.Error(t, err)
	})
}

func TestRestoreListing(t *testing.T) {
	l := draftFixture(t)

	t.Run("restores an active listing with its window", func(t *testing.T) {
		published := now
		expires := now.Add(duration)

		restored, err := RestoreListing(l.ID(), l.Title(), l.Description(), l.Price(),
			nil, l.Media(), StatusActive, now, now, &published, &expires)
		require.NoError(t, err)
		assert.True(t, restored.IsSearchable(now))
	})

	t.Run("active listing without timestamps is corrupt", func(t *testing.T) {
		_, err := RestoreListing(l.ID(), l.Title(), l.Description(), l.Price(),
			nil, l.Media(), StatusActive, now, now, nil, nil)
		assert.Error(t, err)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, err := RestoreListing(l.ID(), l.Title(), l.Description(), l.Price(),
			nil, l.Media(), Status("archived"), now, now, nil, nil)
		assert.Error(t, err)
	})

	t.Run("inverted publication window is corrupt", func(t *testing.T) {
		published := now
		expires := now.Add(-time.Hour)

		_, err := RestoreListing(l.ID(), l.Title(), l.Description(), l.Price(),
			nil, l.Media(), StatusActive, now, now, &published, &expires)
		assert.Error(t, err)
	})
}

func TestListingEquals(t *testing.T) {
	l := draftFixture(t)

	t.Run("equal to itself", func(t *testing.T) {
		assert.True(t, l.Equals(l))
	})

	t.Run("timestamps are part of the state", func(t *testing.T) {
		touched, err := l.MarkAwaitingPayment(now.Add(time.Hour))
		require.NoError(t, err)
		reverted, err := touched.RevertToDraft(now.Add(2 * time.Hour))
		require.NoError(t, err)

		assert.Equal(t, l.Status(), reverted.Status())
		assert.False(t, l.Equals(reverted))
	})
}

func TestListingService(t *testing.T) {
	svc := NewService(duration)

	input := CreateListingInput{
		Title:       "Departamento en Miraflores",
		Description: "Amplio departamento de 3 dormitorios con vista al parque.",
		Price:       priceFixture(t),
		Media:       mediaFixture(t, "https://cdn.example.com/a.jpg"),
		Now:         now,
	}

	t.Run("creates a draft and generates an ID", func(t *testing.T) {
		l, err := svc.CreateListingWithValidation(input)
		require.NoError(t, err)
		assert.False(t, l.ID().IsZero())
		assert.Equal(t, StatusDraft, l.Status())
	})

	t.Run("confirm payment activates with the configured duration", func(t *testing.T) {
		l, err := svc.CreateListingWithValidation(input)
		require.NoError(t, err)
		pending, err := svc.MarkAwaitingPayment(l, now)
		require.NoError(t, err)

		active, err := svc.ConfirmPaymentAndActivate(pending, now)
		require.NoError(t, err)
		assert.Equal(t, now.Add(duration), *active.ExpiresAt())

		_, err = svc.ConfirmPaymentAndActivate(l, now)
		assert.Error(t, err, "draft listing has no confirmed payment")
	})

	t.Run("process expiry reports whether anything changed", func(t *testing.T) {
		l, err := svc.CreateListingWithValidation(input)
		require.NoError(t, err)
		active, err := l.Activate(now, duration)
		require.NoError(t, err)

		same, changed := svc.ProcessExpiry(active, now.Add(time.Hour))
		assert.False(t, changed)
		assert.Equal(t, StatusActive, same.Status())

		expired, changed := svc.ProcessExpiry(active, now.Add(duration+time.Hour))
		assert.True(t, changed)
		assert.Equal(t, StatusExpired, expired.Status())

		_, changed = svc.ProcessExpiry(expired, now.Add(duration+2*time.Hour))
		assert.False(t, changed)
	})
}
