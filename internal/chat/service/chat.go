package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"astrodesk/pkg/config"
	apperrors "astrodesk/pkg/errors"
	"astrodesk/pkg/model"
	"astrodesk/pkg/sanitizer"
)

// systemPrompt fixes the assistant persona. The assistant answers questions
// about the business but never performs readings itself.
const systemPrompt = `You are a friendly AI assistant for "Best Astrologer in Dandenong" - a professional psychic and astrology service in Victoria, Australia.

Business Information:
- Services: Psychic Reading, Astrology Consultation, Spiritual Reading, Love Reading, Get Your Love Back guidance
- Location: 16 Grant St, Dandenong VIC 3175, Australia
- Phone: +61 426 272 559
- Hours: Open 24 hours, 7 days a week
- Rating: 5 stars with 248+ reviews
- Wheelchair accessible

You can help with:
- Explaining our services and what to expect
- Answering general questions about psychic readings, astrology, and spiritual guidance
- Providing information about booking appointments
- Sharing our location and contact details

Be warm, mystical yet professional. If customers have complex questions about their specific situation or want to book an appointment, encourage them to use our booking system or contact form.

Keep responses concise but helpful. Never claim to actually perform readings - direct them to book an appointment for personalized services.`

const upstreamFailureReply = "I apologize, but I'm having trouble responding right now. Please try again or contact us at +61 426 272 559."

const maxMessageLength = 2000

// Completer is the slice of the Groq client the chat flow needs.
type Completer interface {
	Configured() bool
	ChatCompletion(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// StatsRecorder is the slice of the analytics service the chat flow needs.
type StatsRecorder interface {
	Increment(ctx context.Context, metricType, date, page string) error
}

type ChatService interface {
	Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error)
}

type chatService struct {
	completer Completer
	stats     StatsRecorder
	cfg       *config.Config
}

func NewChatService(completer Completer, stats StatsRecorder, cfg *config.Config) ChatService {
	return &chatService{
		completer: completer,
		stats:     stats,
		cfg:       cfg,
	}
}

// Chat relays one user message to the language model. A missing upstream key
// fails fast as unavailable; an upstream failure maps to a bad gateway with
// a reply that is safe to show the visitor.
func (s *chatService) Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	message := sanitizer.TrimAndNormalize(req.Message)
	if message == "" {
		return nil, apperrors.InvalidInput("Message cannot be empty")
	}
	if len(message) > maxMessageLength {
		return nil, apperrors.InvalidInput("Message is too long")
	}

	if !s.completer.Configured() {
		return nil, apperrors.Unavailable("Chat assistant")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	reply, err := s.completer.ChatCompletion(ctx, systemPrompt, message)
	if err != nil {
		s.cfg.Log.Error("Chat completion failed", "session_id", sessionID, "error", err)
		return nil, apperrors.BadGateway(upstreamFailureReply, err)
	}

	if err := s.stats.Increment(ctx, model.MetricChats, today(), ""); err != nil {
		s.cfg.Log.Warn("Failed to record chat metric", "error", err)
	}

	s.cfg.Log.Info("Chat reply sent", "session_id", sessionID)
	return &model.ChatResponse{
		Response:  reply,
		SessionID: sessionID,
	}, nil
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
