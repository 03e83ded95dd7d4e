package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/casamaria/storefront-backend/internal/catalog"
	"github.com/casamaria/storefront-backend/pkg/enums"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/genai"
	"github.com/casamaria/storefront-backend/pkg/logger"
)

// Replies returned instead of an error so the storefront widget always has
// something to show. The first covers an empty completion, the second any
// upstream failure.
const (
	FallbackEmptyReply   = "¡Ups! Se me cayó la hamburguesa (error de conexión). ¿Me repites eso?"
	FallbackUpstreamDown = "Lo siento, estoy teniendo problemas técnicos en la cocina. Intenta de nuevo más tarde."
)

// menuSummaryLimit caps the serialized menu embedded in the persona prompt.
const menuSummaryLimit = 5000

// Turn is one prior exchange in the widget conversation.
type Turn struct {
	Role enums.ChatRole `json:"role"`
	Text string         `json:"text"`
}

type completer interface {
	Complete(ctx context.Context, systemPrompt string, conversation []genai.Message) (string, error)
}

type menuLister interface {
	List(ctx context.Context) []catalog.MenuItem
}

// Service answers storefront chat messages as "María", the virtual
// assistant, grounding replies in the live menu.
type Service struct {
	client  completer
	catalog menuLister
	logg    *logger.Logger
}

// NewService builds the chat service.
func NewService(client completer, cat menuLister, logg *logger.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("completion client is required")
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	return &Service{client: client, catalog: cat, logg: logg}, nil
}

// Send validates the turn, forwards it with the persona prompt, and maps
// upstream failures to the fixed Spanish fallbacks. Context cancellation
// propagates as an error so the handler can drop the response.
func (s *Service) Send(ctx context.Context, history []Turn, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	for _, turn := range history {
		if !turn.Role.IsValid() {
			return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid chat role %q", turn.Role))
		}
	}

	conversation := make([]genai.Message, 0, len(history)+1)
	for _, turn := range history {
		role := "user"
		if turn.Role == enums.ChatRoleModel {
			role = "assistant"
		}
		conversation = append(conversation, genai.Message{Role: role, Content: turn.Text})
	}
	conversation = append(conversation, genai.Message{Role: "user", Content: message})

	reply, err := s.client.Complete(ctx, s.personaPrompt(ctx), conversation)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if s.logg != nil {
			s.logg.Error(ctx, "chat completion failed", err)
		}
		return FallbackUpstreamDown, nil
	}
	if strings.TrimSpace(reply) == "" {
		return FallbackEmptyReply, nil
	}
	return reply, nil
}

func (s *Service) personaPrompt(ctx context.Context) string {
	items := s.catalog.List(ctx)
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s: %s ($%d)", item.Name, item.Description, item.Price))
	}

	summary := "[]"
	if raw, err := json.Marshal(lines); err == nil {
		summary = string(raw)
	}
	summary = truncate(summary, menuSummaryLimit)

	return fmt.Sprintf(`
Eres 'María', la asistente virtual experta de Casa María Burguer.
Tu objetivo es ayudar a los clientes a elegir la mejor hamburguesa, explicar ingredientes y sugerir acompañamientos.
Conoces el menú a la perfección:
%s

Reglas:
1. Sé amable, divertida y muy breve.
2. Si preguntan por ubicación, menciona que está en la sección de Ubicación.
3. Si quieren pedir, diles que agreguen productos al carrito.
4. Responde siempre en Español.
5. Usa emojis de comida 🍔🍟🥤.
`, summary)
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
