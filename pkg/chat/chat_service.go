package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mtauhidul/niblet-ai-v2-sub000/domain"
	"github.com/mtauhidul/niblet-ai-v2-sub000/entities"
	"github.com/mtauhidul/niblet-ai-v2-sub000/internal/utils/storage"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/intent"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/logstore"
	"github.com/mtauhidul/niblet-ai-v2-sub000/pkg/user"
)

type (
	// ChatService runs the conversational turn: persist the user message,
	// extract intents, apply their side effects in a fixed order, and answer
	// with a single assistant message that echoes what was applied.
	ChatService interface {
		SendMessage(ctx context.Context, userID string, req domain.SendMessageRequest) (domain.SendMessageResponse, error)
		GetTranscript(ctx context.Context, userID string) (domain.TranscriptResponse, error)
		StartNewSession(ctx context.Context, userID string) (domain.TranscriptResponse, error)
		ClearTranscript(ctx context.Context, userID string) error
	}

	chatService struct {
		chatRepository   ChatRepository
		userRepository   user.UserRepository
		mealRepository   logstore.MealLogRepository
		weightRepository logstore.WeightLogRepository
		feed             logstore.Feed
		extractor        intent.IntentExtractor
		s3               storage.AwsS3
	}
)

func NewChatService(
	chatRepository ChatRepository,
	userRepository user.UserRepository,
	mealRepository logstore.MealLogRepository,
	weightRepository logstore.WeightLogRepository,
	feed logstore.Feed,
	extractor intent.IntentExtractor,
	s3 storage.AwsS3,
) ChatService {
	return &chatService{
		chatRepository:   chatRepository,
		userRepository:   userRepository,
		mealRepository:   mealRepository,
		weightRepository: weightRepository,
		feed:             feed,
		extractor:        extractor,
		s3:               s3,
	}
}

func (s *chatService) SendMessage(ctx context.Context, userID string, req domain.SendMessageRequest) (domain.SendMessageResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return domain.SendMessageResponse{}, domain.ErrEmptyMessage
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SendMessageResponse{}, domain.ErrParseUUID
	}

	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SendMessageResponse{}, domain.ErrUserNotFound
		}
		return domain.SendMessageResponse{}, err
	}

	now := time.Now().In(userLocation(found))
	label := intent.PreclassifyLabel(message)

	var attachment *intent.ImageAttachment
	imageURL := ""
	if req.Image != nil {
		attachment, imageURL = s.prepareImage(req.Image)
	}

	// The dampener context comes from the last assistant turn before this
	// message is saved.
	lastClarified := s.lastClarifiedMeal(ctx, userID)

	userMessage := &entities.ChatMessage{
		ID:            uuid.New(),
		UserID:        userUUID,
		MessageID:     NewMessageID(now),
		Role:          domain.ChatRoleUser,
		Content:       message,
		ImageURL:      imageURL,
		SchemaVersion: TranscriptSchemaVersion,
		SentAt:        now,
	}
	if err := s.chatRepository.SaveMessage(ctx, userMessage); err != nil {
		return domain.SendMessageResponse{}, err
	}

	userContext := s.buildUserContext(ctx, found, now)
	userContext.LastClarifiedMeal = lastClarified

	result, err := s.extractor.Extract(ctx, intent.ExtractionRequest{
		Message:    message,
		Image:      attachment,
		ContextTag: contextTagOrDefault(req.ContextTag),
		User:       userContext,
	})
	if err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) || errors.Is(err, domain.ErrExtractorNotConfigured) {
			return domain.SendMessageResponse{}, err
		}
		// Any other extraction failure degrades to an in-turn apology with
		// no side effects; the turn itself still succeeds.
		log.Errorf("intent extraction for %s: %v", userID, err)
		result = &intent.ExtractionResult{
			Response:    "Sorry, I had trouble with that one. Mind saying it again?",
			Unparseable: true,
		}
	}

	assistant := &entities.ChatMessage{
		ID:               uuid.New(),
		UserID:           userUUID,
		MessageID:        NewMessageID(now),
		Role:             domain.ChatRoleAssistant,
		Content:          result.Response,
		ClarificationFor: result.ClarificationFor,
		SchemaVersion:    TranscriptSchemaVersion,
		SentAt:           time.Now().In(now.Location()),
	}
	s.applyIntents(ctx, found, now, result, imageURL, assistant)

	if err := s.chatRepository.SaveMessage(ctx, assistant); err != nil {
		return domain.SendMessageResponse{}, err
	}

	return domain.SendMessageResponse{
		LoadingLabel: label,
		Reply:        toChatMessageResponse(assistant),
	}, nil
}

// applyIntents applies the side-effect payloads in a fixed order: meal log,
// weight log, meal removal. Each is attempted independently and appends its
// own line to the assistant reply: a confirmation with the written values on
// success, a failure line otherwise. One failing leaves the others applied.
func (s *chatService) applyIntents(
	ctx context.Context,
	found *entities.User,
	now time.Time,
	result *intent.ExtractionResult,
	imageURL string,
	assistant *entities.ChatMessage,
) {
	changed := false
	userID := found.ID.String()

	if m := result.MealLog; m != nil && m.ShouldLog {
		entry := &entities.MealLogEntry{
			ID:         uuid.New(),
			UserID:     found.ID,
			MealName:   m.MealName,
			MealType:   m.MealType,
			Amount:     m.Amount,
			Unit:       m.Unit,
			Calories:   m.Calories,
			ProteinG:   m.Protein,
			CarbsG:     m.Carbs,
			FatG:       m.Fat,
			FiberG:     m.Fiber,
			ImageURL:   imageURL,
			ConsumedAt: now,
		}
		if err := s.mealRepository.AddMealLog(ctx, entry); err != nil {
			log.Errorf("chat meal log for %s: %v", userID, err)
			assistant.Content += "\n\nI couldn't save that meal just now, please try logging it again."
		} else {
			assistant.MealLogged = true
			assistant.LoggedMealName = m.MealName
			assistant.LoggedCalories = m.Calories
			assistant.Content += fmt.Sprintf("\n\nLogged %s (%.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat).",
				m.MealName, m.Calories, m.Protein, m.Carbs, m.Fat)
			changed = true
		}
	}

	if w := result.WeightLog; w != nil && w.ShouldLog {
		entry := &entities.WeightLogEntry{
			ID:         uuid.New(),
			UserID:     found.ID,
			WeightKg:   w.WeightKg,
			RecordedAt: now,
		}
		if err := s.weightRepository.AddWeightLog(ctx, entry); err != nil {
			log.Errorf("chat weight log for %s: %v", userID, err)
			assistant.Content += "\n\nI couldn't save your weight just now, please try again."
		} else {
			assistant.WeightLogged = true
			assistant.LoggedWeightKg = w.WeightKg
			assistant.Content += fmt.Sprintf("\n\nWeight logged at %.1f kg.", w.WeightKg)

			found.CurrentWeightKg = w.WeightKg
			if found.HeightCm > 0 {
				heightM := found.HeightCm / 100
				found.BMI = w.WeightKg / (heightM * heightM)
			}
			_ = s.userRepository.UpdateUser(ctx, found)
			changed = true
		}
	}

	if r := result.MealRemoval; r != nil && r.ShouldRemove {
		target, err := s.resolveRemoval(ctx, userID, r.MealToRemove, now)
		switch {
		case errors.Is(err, domain.ErrRemovalTargetNotFound):
			assistant.Content += "\n\nI couldn't find that meal in your recent log."
		case err != nil:
			log.Errorf("chat meal removal for %s: %v", userID, err)
			assistant.Content += "\n\nSomething went wrong removing that meal, please try again."
		default:
			if err := s.mealRepository.DeleteMealLog(ctx, target.ID.String()); err != nil {
				log.Errorf("chat meal removal for %s: %v", userID, err)
				assistant.Content += "\n\nSomething went wrong removing that meal, please try again."
			} else {
				assistant.MealRemoved = true
				assistant.RemovedMealName = target.MealName
				assistant.RemovedCalories = target.Calories
				assistant.Content += fmt.Sprintf("\n\nRemoved %s (%.0f kcal).", target.MealName, target.Calories)
				changed = true
			}
		}
	}

	if changed {
		s.feed.Refresh(userID)
	}
}

// resolveRemoval maps a removal target onto a stored entry. The literal
// "latest" means the most recently consumed meal today; anything else is a
// case-insensitive substring match over the ten most recent meal names,
// first match wins. Resolution reads the feed snapshot and may trail a write
// still being refreshed.
func (s *chatService) resolveRemoval(ctx context.Context, userID, target string, now time.Time) (*entities.MealLogEntry, error) {
	snapshot := s.feed.MealSnapshot(ctx, userID)

	if target == "latest" {
		var latest *entities.MealLogEntry
		for _, entry := range snapshot {
			if !sameDay(entry.ConsumedAt, now) {
				continue
			}
			if latest == nil || entry.ConsumedAt.After(latest.ConsumedAt) {
				latest = entry
			}
		}
		if latest == nil {
			return nil, domain.ErrRemovalTargetNotFound
		}
		return latest, nil
	}

	needle := strings.ToLower(target)
	limit := len(snapshot)
	if limit > 10 {
		limit = 10
	}
	for _, entry := range snapshot[:limit] {
		if strings.Contains(strings.ToLower(entry.MealName), needle) {
			return entry, nil
		}
	}
	return nil, domain.ErrRemovalTargetNotFound
}

func (s *chatService) GetTranscript(ctx context.Context, userID string) (domain.TranscriptResponse, error) {
	messages, err := s.chatRepository.GetMessages(ctx, userID)
	if err != nil {
		return domain.TranscriptResponse{}, err
	}

	backfilled := make(map[*entities.ChatMessage]bool)
	for _, m := range messages {
		if m.MessageID == "" {
			backfilled[m] = true
		}
	}

	cleaned, discard := NormalizeTranscript(messages)
	if discard {
		if err := s.chatRepository.DeleteMessages(ctx, userID); err != nil {
			return domain.TranscriptResponse{}, err
		}
		return domain.TranscriptResponse{Messages: []domain.ChatMessageResponse{}}, nil
	}

	response := make([]domain.ChatMessageResponse, 0, len(cleaned))
	for _, m := range cleaned {
		if backfilled[m] {
			// Persist the backfilled id so the next load sees the same one.
			if err := s.chatRepository.UpdateMessage(ctx, m); err != nil {
				log.Errorf("transcript id backfill for %s: %v", userID, err)
			}
		}
		response = append(response, toChatMessageResponse(m))
	}
	return domain.TranscriptResponse{Messages: response}, nil
}

// StartNewSession wipes the transcript and seeds it with a greeting. The
// first session of a calendar day also prompts for a weigh-in and stamps the
// check-in marker.
func (s *chatService) StartNewSession(ctx context.Context, userID string) (domain.TranscriptResponse, error) {
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TranscriptResponse{}, domain.ErrUserNotFound
		}
		return domain.TranscriptResponse{}, err
	}

	if err := s.chatRepository.DeleteMessages(ctx, userID); err != nil {
		return domain.TranscriptResponse{}, err
	}

	now := time.Now().In(userLocation(found))
	today := now.Format("2006-01-02")
	checkIn := found.LastCheckInDate != today
	if checkIn {
		found.LastCheckInDate = today
		_ = s.userRepository.UpdateUser(ctx, found)
	}

	greeting := &entities.ChatMessage{
		ID:            uuid.New(),
		UserID:        found.ID,
		MessageID:     NewMessageID(now),
		Role:          domain.ChatRoleAssistant,
		Content:       sessionGreeting(now, firstName(found.Name), checkIn),
		SchemaVersion: TranscriptSchemaVersion,
		SentAt:        now,
	}
	if err := s.chatRepository.SaveMessage(ctx, greeting); err != nil {
		return domain.TranscriptResponse{}, err
	}

	return domain.TranscriptResponse{
		Messages: []domain.ChatMessageResponse{toChatMessageResponse(greeting)},
	}, nil
}

func (s *chatService) ClearTranscript(ctx context.Context, userID string) error {
	return s.chatRepository.DeleteMessages(ctx, userID)
}

// prepareImage uploads the attachment for the transcript record and reads
// its bytes for the extractor. Either half failing degrades to a text-only
// turn rather than failing the message.
func (s *chatService) prepareImage(file *multipart.FileHeader) (*intent.ImageAttachment, string) {
	var attachment *intent.ImageAttachment
	if src, err := file.Open(); err == nil {
		data, readErr := io.ReadAll(src)
		src.Close()
		if readErr == nil {
			attachment = &intent.ImageAttachment{
				Data:     data,
				MimeType: file.Header.Get("Content-Type"),
			}
		} else {
			log.Errorf("chat image read: %v", readErr)
		}
	} else {
		log.Errorf("chat image open: %v", err)
	}

	imageURL := ""
	objectKey, err := s.s3.UploadFile(uuid.NewString(), file, "chat-images", storage.AllowImage...)
	if err != nil {
		log.Errorf("chat image upload: %v", err)
	} else {
		imageURL = s.s3.GetPublicLinkKey(objectKey)
	}
	return attachment, imageURL
}

func (s *chatService) buildUserContext(ctx context.Context, found *entities.User, now time.Time) intent.UserContext {
	userContext := intent.UserContext{
		ProfileSummary: profileSummary(found),
		LocalTime:      now,
	}

	userID := found.ID.String()
	if entries, err := s.mealRepository.GetMealLogsByDay(ctx, userID, now); err == nil {
		for _, entry := range entries {
			userContext.TodayCalories += entry.Calories
			userContext.TodayProteinG += entry.ProteinG
			userContext.TodayCarbsG += entry.CarbsG
			userContext.TodayFatG += entry.FatG
		}
	} else {
		log.Errorf("chat today totals for %s: %v", userID, err)
	}

	for i, entry := range s.feed.MealSnapshot(ctx, userID) {
		if i == 10 {
			break
		}
		userContext.RecentMeals = append(userContext.RecentMeals, entry.MealName)
	}
	return userContext
}

func (s *chatService) lastClarifiedMeal(ctx context.Context, userID string) string {
	messages, err := s.chatRepository.GetMessages(ctx, userID)
	if err != nil {
		return ""
	}
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.ChatRoleAssistant {
			return messages[i].ClarificationFor
		}
	}
	return ""
}

func toChatMessageResponse(m *entities.ChatMessage) domain.ChatMessageResponse {
	return domain.ChatMessageResponse{
		MessageID:       m.MessageID,
		Role:            m.Role,
		Content:         m.Content,
		ImageURL:        m.ImageURL,
		SentAt:          m.SentAt,
		MealLogged:      m.MealLogged,
		LoggedMealName:  m.LoggedMealName,
		LoggedCalories:  m.LoggedCalories,
		WeightLogged:    m.WeightLogged,
		LoggedWeightKg:  m.LoggedWeightKg,
		MealRemoved:     m.MealRemoved,
		RemovedMealName: m.RemovedMealName,
		RemovedCalories: m.RemovedCalories,
	}
}

func contextTagOrDefault(tag string) string {
	if tag == "" {
		return domain.ContextNibletAssistant
	}
	return tag
}

func userLocation(found *entities.User) *time.Location {
	if found.Timezone != "" {
		if loc, err := time.LoadLocation(found.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func profileSummary(found *entities.User) string {
	if !found.OnboardingComplete {
		return fmt.Sprintf("%s, onboarding not complete", found.Name)
	}
	return fmt.Sprintf("%s, %d years, %s, %.0f cm, %.1f kg, goal %s to %.1f kg, daily target %d kcal",
		found.Name, found.Age, found.Gender, found.HeightCm, found.CurrentWeightKg,
		found.GoalType, found.TargetWeightKg, found.TargetCalories)
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
