package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladenbot/laden/internal/domain/models"
	"github.com/ladenbot/laden/internal/service/session"
)

type fakeDeliverer struct {
	sent []outbound
	err  error
}

type outbound struct {
	to      string
	message string
}

func (f *fakeDeliverer) Send(ctx context.Context, to, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, outbound{to: to, message: message})
	return nil
}

type fakeAudit struct {
	entries []models.QueryLog
}

func (f *fakeAudit) SaveQueryLog(ctx context.Context, entry models.QueryLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func newTestService(rows [][]string) (*Service, *fakeDeliverer, *fakeAudit) {
	src := &fakeRowSource{rows: rows}
	cache, _ := newTestCache(src, 15*time.Minute)
	deliverer := &fakeDeliverer{}
	audit := &fakeAudit{}
	svc := NewService(cache, session.NewStore(), deliverer, audit, Options{
		PageSize:       7,
		FuzzyThreshold: 0.7,
	}, nil)
	return svc, deliverer, audit
}

func TestResolveLookupWithSynonym(t *testing.T) {
	svc, _, audit := newTestService(sheetFixture())

	reply, ok := svc.Resolve(context.Background(), "tanya den wipol", "628111")
	require.True(t, ok)

	assert.Contains(t, reply, "WYPALL L30")
	assert.Contains(t, reply, "Pencarian: WYPALL (1 items)")
	assert.Contains(t, reply, "Mining : 5 | Hauling : 3")
	assert.Contains(t, reply, "(A-01 | B-07)")
	assert.Contains(t, reply, "🕒 12 Jan")

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "wypall", audit.entries[0].Keyword)
	assert.Equal(t, 1, audit.entries[0].Matches)
}

func TestResolveIgnoresNoise(t *testing.T) {
	svc, _, audit := newTestService(sheetFixture())

	for _, msg := range []string{"di stok gudang sebelah", "halo semua", "ok makasih"} {
		_, ok := svc.Resolve(context.Background(), msg, "628111")
		assert.False(t, ok, "message %q should be silence", msg)
	}
	assert.Empty(t, audit.entries)
}

func TestResolveNotFound(t *testing.T) {
	svc, _, _ := newTestService(sheetFixture())

	reply, ok := svc.Resolve(context.Background(), "laden sparepart xyz tidak ada", "628111")
	require.True(t, ok)
	assert.Contains(t, reply, "boten wonten")
}

func TestResolveUnavailableDataset(t *testing.T) {
	src := &fakeRowSource{err: errors.New("quota exceeded")}
	cache, _ := newTestCache(src, 15*time.Minute)
	svc := NewService(cache, session.NewStore(), &fakeDeliverer{}, nil, Options{PageSize: 7, FuzzyThreshold: 0.7}, nil)

	reply, ok := svc.Resolve(context.Background(), "laden wypall", "628111")
	require.True(t, ok)
	assert.Equal(t, FormatUnavailable(), reply)
}

func TestResolveIntroduction(t *testing.T) {
	svc, _, _ := newTestService(sheetFixture())

	reply, ok := svc.Resolve(context.Background(), "laden itu siapa", "628111")
	require.True(t, ok)
	assert.Equal(t, FormatIntro(), reply)
}

func paginationFixture() [][]string {
	rows := [][]string{
		{"Material", "Material Description", "Total Stock", "Plant", "Storage Bin"},
	}
	for i := 1; i <= 9; i++ {
		rows = append(rows, []string{
			fmt.Sprintf("F%d", i),
			fmt.Sprintf("FILTER %02d", i),
			"1",
			"40AI-01",
			fmt.Sprintf("A-%02d", i),
		})
	}
	return rows
}

func TestResolvePaginationFlow(t *testing.T) {
	svc, _, _ := newTestService(paginationFixture())
	sender := "628111"

	first, ok := svc.Resolve(context.Background(), "laden filter", sender)
	require.True(t, ok)
	assert.Contains(t, first, "Pencarian: FILTER (9 items)")
	assert.Contains(t, first, "Hal 1/2")
	assert.Contains(t, first, "FILTER 01")
	assert.NotContains(t, first, "FILTER 08")

	second, ok := svc.Resolve(context.Background(), "lagi", sender)
	require.True(t, ok)
	assert.Contains(t, second, "Hal 2/2")
	assert.Contains(t, second, "FILTER 08")
	assert.NotContains(t, second, "FILTER 01\n")

	// Asking again past the end yields the explicit last-page message.
	third, ok := svc.Resolve(context.Background(), "lagi", sender)
	require.True(t, ok)
	assert.Contains(t, third, "Sampun telas")

	// And it stays there instead of falling off the end.
	fourth, ok := svc.Resolve(context.Background(), "lagi", sender)
	require.True(t, ok)
	assert.Contains(t, fourth, "Sampun telas")
}

func TestResolveNotFoundResetsSession(t *testing.T) {
	svc, _, _ := newTestService(paginationFixture())
	sender := "628111"

	first, ok := svc.Resolve(context.Background(), "laden filter", sender)
	require.True(t, ok)
	assert.Contains(t, first, "Hal 1/2")

	// A fruitless search overwrites the session, so "lagi" must not page
	// the earlier keyword.
	notFound, ok := svc.Resolve(context.Background(), "laden zzzzz", sender)
	require.True(t, ok)
	assert.Contains(t, notFound, "boten wonten")

	reply, ok := svc.Resolve(context.Background(), "lagi", sender)
	require.True(t, ok)
	assert.Contains(t, reply, "boten wonten")
	assert.NotContains(t, reply, "FILTER")
}

func TestResolvePaginationIsPerSender(t *testing.T) {
	svc, _, _ := newTestService(paginationFixture())

	_, ok := svc.Resolve(context.Background(), "laden filter", "sender-a")
	require.True(t, ok)

	// A second sender with no session gets silence for a bare "lagi".
	_, ok = svc.Resolve(context.Background(), "lagi", "sender-b")
	assert.False(t, ok)
}

func TestResolveBatch(t *testing.T) {
	svc, _, _ := newTestService(sheetFixture())

	reply, ok := svc.Resolve(context.Background(), "cek stok wipol, filter udara", "628111")
	require.True(t, ok)
	assert.Contains(t, reply, "▸ *WYPALL*")
	assert.Contains(t, reply, "▸ *FILTER UDARA*")
	assert.Contains(t, reply, "WYPALL L30 | Mining 5 | Hauling 3")
}

func TestHandleInboundDelivers(t *testing.T) {
	svc, deliverer, _ := newTestService(sheetFixture())

	err := svc.HandleInbound(context.Background(), models.WebhookPayload{
		Pesan:    "tanya den wypall l30",
		Pengirim: "628111",
	})
	require.NoError(t, err)
	require.Len(t, deliverer.sent, 1)
	assert.Equal(t, "628111", deliverer.sent[0].to)
	assert.True(t, strings.Contains(deliverer.sent[0].message, "WYPALL L30"))
}

func TestHandleInboundIgnoresNoiseSilently(t *testing.T) {
	svc, deliverer, _ := newTestService(sheetFixture())

	err := svc.HandleInbound(context.Background(), models.WebhookPayload{
		Message: "rapat jam 3 ya",
		Sender:  "628111",
	})
	require.NoError(t, err)
	assert.Empty(t, deliverer.sent)
}

func TestHandleInboundReportsDeliveryFailure(t *testing.T) {
	svc, deliverer, _ := newTestService(sheetFixture())
	deliverer.err = errors.New("gateway timeout")

	err := svc.HandleInbound(context.Background(), models.WebhookPayload{
		Message:  "laden wypall",
		Pengirim: "628111",
	})
	assert.Error(t, err)
}
