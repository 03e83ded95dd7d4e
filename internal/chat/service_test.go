package chat

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/casamaria/storefront-backend/internal/catalog"
	"github.com/casamaria/storefront-backend/pkg/enums"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply      string
	err        error
	gotPrompt  string
	gotConvo   []genai.Message
	checkedCtx context.Context
}

func (s *stubCompleter) Complete(ctx context.Context, systemPrompt string, conversation []genai.Message) (string, error) {
	s.checkedCtx = ctx
	s.gotPrompt = systemPrompt
	s.gotConvo = conversation
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type stubCatalog struct {
	items []catalog.MenuItem
}

func (s *stubCatalog) List(_ context.Context) []catalog.MenuItem {
	return s.items
}

func testCatalog() *stubCatalog {
	return &stubCatalog{items: []catalog.MenuItem{
		{ID: "1", Name: "Clásica María", Description: "Carne jugosa", Price: 24000, Category: enums.MenuCategoryBurger},
	}}
}

func TestSendForwardsHistoryAndMessage(t *testing.T) {
	client := &stubCompleter{reply: "¡Te recomiendo la Clásica! 🍔"}
	svc, err := NewService(client, testCatalog(), nil)
	require.NoError(t, err)

	reply, err := svc.Send(context.Background(), []Turn{
		{Role: enums.ChatRoleUser, Text: "Hola"},
		{Role: enums.ChatRoleModel, Text: "¡Hola! ¿Qué te provoca?"},
	}, "¿Cuál me recomiendas?")
	require.NoError(t, err)
	assert.Equal(t, "¡Te recomiendo la Clásica! 🍔", reply)

	require.Len(t, client.gotConvo, 3)
	assert.Equal(t, "user", client.gotConvo[0].Role)
	assert.Equal(t, "assistant", client.gotConvo[1].Role)
	assert.Equal(t, "¿Cuál me recomiendas?", client.gotConvo[2].Content)
}

func TestSendPersonaPromptIncludesMenu(t *testing.T) {
	client := &stubCompleter{reply: "ok"}
	svc, err := NewService(client, testCatalog(), nil)
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), nil, "Hola")
	require.NoError(t, err)

	assert.Contains(t, client.gotPrompt, "Eres 'María'")
	assert.Contains(t, client.gotPrompt, "Clásica María: Carne jugosa ($24000)")
	assert.Contains(t, client.gotPrompt, "Responde siempre en Español.")
}

func TestSendTruncatesLongMenuSummary(t *testing.T) {
	items := make([]catalog.MenuItem, 200)
	for i := range items {
		items[i] = catalog.MenuItem{
			Name:        "Hamburguesa con un nombre exageradamente largo",
			Description: strings.Repeat("queso ", 20),
			Price:       24000,
		}
	}
	client := &stubCompleter{reply: "ok"}
	svc, err := NewService(client, &stubCatalog{items: items}, nil)
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), nil, "Hola")
	require.NoError(t, err)

	start := strings.Index(client.gotPrompt, "[")
	end := strings.Index(client.gotPrompt, "\n\nReglas:")
	require.Greater(t, end, start)
	assert.LessOrEqual(t, end-start, menuSummaryLimit)
	assert.True(t, utf8.ValidString(client.gotPrompt))
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	s := strings.Repeat("á", 100)

	for limit := 1; limit <= len(s); limit++ {
		out := truncate(s, limit)
		assert.LessOrEqual(t, len(out), limit)
		assert.True(t, utf8.ValidString(out))
	}
}

func TestSendMapsUpstreamFailureToFallback(t *testing.T) {
	client := &stubCompleter{err: pkgerrors.New(pkgerrors.CodeDependency, "completion status 500")}
	svc, err := NewService(client, testCatalog(), nil)
	require.NoError(t, err)

	reply, err := svc.Send(context.Background(), nil, "Hola")
	require.NoError(t, err)
	assert.Equal(t, FallbackUpstreamDown, reply)
}

func TestSendMapsEmptyReplyToFallback(t *testing.T) {
	client := &stubCompleter{reply: "   "}
	svc, err := NewService(client, testCatalog(), nil)
	require.NoError(t, err)

	reply, err := svc.Send(context.Background(), nil, "Hola")
	require.NoError(t, err)
	assert.Equal(t, FallbackEmptyReply, reply)
}

func TestSendPropagatesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &stubCompleter{err: context.Canceled}
	svc, err := NewService(client, testCatalog(), nil)
	require.NoError(t, err)

	_, err = svc.Send(ctx, nil, "Hola")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSendValidatesInput(t *testing.T) {
	svc, err := NewService(&stubCompleter{reply: "ok"}, testCatalog(), nil)
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), nil, "   ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Send(context.Background(), []Turn{{Role: enums.ChatRole("system"), Text: "x"}}, "Hola")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
