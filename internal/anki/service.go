package anki

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kpauljoseph/pdfreview/pkg/logger"
	"github.com/kpauljoseph/pdfreview/pkg/models"
)

const (
	DefaultAnkiConnectURL = "http://localhost:8765"
	PDFReviewModelName    = "PDFReview"
	MaxRetries            = 3
	RetryDelay            = 500 * time.Millisecond
)

type Service struct {
	ankiConnectURL string
	client         *http.Client
	retryDelay     time.Duration
	logger         *logger.Logger
}

type Option func(*Service)

func WithURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.ankiConnectURL = url
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.client = client
	}
}

func WithRetryDelay(delay time.Duration) Option {
	return func(s *Service) {
		s.retryDelay = delay
	}
}

type AnkiConnectRequest struct {
	Action  string      `json:"action"`
	Version int         `json:"version"`
	Params  interface{} `json:"params"`
}

type Note struct {
	DeckName  string                 `json:"deckName"`
	ModelName string                 `json:"modelName"`
	Fields    map[string]string      `json:"fields"`
	Options   map[string]interface{} `json:"options"`
	Tags      []string               `json:"tags"`
}

// ExportStats counts what ExportDeck did with each flashcard.
type ExportStats struct {
	Added   int
	Skipped int
	Failed  int
}

func NewService(logger *logger.Logger, options ...Option) *Service {
	s := &Service{
		ankiConnectURL: DefaultAnkiConnectURL,
		client:         http.DefaultClient,
		retryDelay:     RetryDelay,
		logger:         logger,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Service) ensureModelExists() error {
	request := AnkiConnectRequest{
		Action:  "modelNames",
		Version: ANKI_CONNECT_VERSION,
		Params:  map[string]interface{}{},
	}

	result, err := s.sendRequest(request)
	if err != nil {
		return fmt.Errorf("failed to get models: %w", err)
	}

	var modelNames []string
	if err := json.Unmarshal(result, &modelNames); err != nil {
		return fmt.Errorf("failed to parse model names: %w", err)
	}

	for _, name := range modelNames {
		if name == PDFReviewModelName {
			s.logger.Debug("PDFReview model already exists")
			return nil
		}
	}

	createRequest := AnkiConnectRequest{
		Action:  "createModel",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]interface{}{
			"modelName": PDFReviewModelName,
			"inOrderFields": []string{
				"Front",
				"Back",
				"ID",
			},
			"css": `.card {
                font-family: arial;
                font-size: 20px;
                text-align: center;
                color: black;
                background-color: white;
            }
            .page { font-size: 14px; color: grey; }
            .id { display: none; }`,
			"cardTemplates": []map[string]interface{}{
				{
					"Name": "Card 1",
					"Front": `{{Front}}
                        <div class="id">{{ID}}</div>`,
					"Back": `{{FrontSide}}
                        <hr id="answer">
                        {{Back}}`,
				},
			},
		},
	}

	_, err = s.sendRequest(createRequest)
	if err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}

	s.logger.Info("Created PDFReview model")
	return nil
}

func (s *Service) CheckConnection() error {
	request := AnkiConnectRequest{
		Action:  "version",
		Version: ANKI_CONNECT_VERSION,
		Params:  map[string]interface{}{},
	}

	_, err := s.sendRequest(request)
	if err != nil {
		s.logger.Info("Error sending request to Anki: %v", err)
		return fmt.Errorf("could not connect to Anki at %s. Please ensure:\n"+
			"1. Anki is running https://apps.ankiweb.net/#download\n"+
			"2. AnkiConnect add-on is installed (code: 2055492159) https://ankiweb.net/shared/info/2055492159\n"+
			"3. Anki has been restarted after installing AnkiConnect", s.ankiConnectURL)
	}

	return nil
}

func (s *Service) CreateDeck(deckName string) error {
	s.logger.Info("Creating deck: %s", deckName)
	request := AnkiConnectRequest{
		Action:  "createDeck",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]string{
			"deck": deckName,
		},
	}

	_, err := s.sendRequest(request)
	return err
}

func (s *Service) findExistingNoteByID(id string) (int, error) {
	request := AnkiConnectRequest{
		Action:  "findNotes",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]interface{}{
			"query": fmt.Sprintf("ID:%s", id),
		},
	}

	result, err := s.sendRequest(request)
	if err != nil {
		return 0, fmt.Errorf("failed to search notes: %w", err)
	}

	var noteIds []int
	if err := json.Unmarshal(result, &noteIds); err != nil {
		return 0, fmt.Errorf("failed to parse note IDs: %w", err)
	}

	if len(noteIds) > 0 {
		return noteIds[0], nil
	}

	return 0, nil
}

// AddFlashcard adds one note for fc unless a note with the same flashcard ID
// is already in Anki. It reports whether a note was added.
func (s *Service) AddFlashcard(deckName string, fc *models.Flashcard) (bool, error) {
	s.logger.Debug("Processing flashcard %s for deck: %s", fc.ID, deckName)

	existingNoteId, err := s.findExistingNoteByID(fc.ID)
	if err != nil {
		s.logger.Debug("Warning: failed to check for existing note: %v", err)
	} else if existingNoteId != 0 {
		s.logger.Debug("Skipping flashcard already in Anki: %s", fc.ID)
		return false, nil
	}

	note := Note{
		DeckName:  deckName,
		ModelName: PDFReviewModelName,
		Fields: map[string]string{
			"Front": frontField(fc),
			"Back":  textToHTML(fc.Answer),
			"ID":    fc.ID,
		},
		Options: map[string]interface{}{
			"allowDuplicate": false,
		},
		Tags: []string{"pdfreview", getDeckNameUnderscoreSeparatedForTag(deckName)},
	}

	request := AnkiConnectRequest{
		Action:  "addNote",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]interface{}{
			"note": note,
		},
	}

	if _, err := s.sendRequest(request); err != nil {
		return false, fmt.Errorf("failed to add note: %w", err)
	}

	s.logger.Debug("Successfully added flashcard: %s", fc.ID)
	return true, nil
}

// ExportDeck creates deckName and adds every flashcard to it.
func (s *Service) ExportDeck(deckName string, flashcards []*models.Flashcard) (ExportStats, error) {
	var stats ExportStats

	if err := s.ensureModelExists(); err != nil {
		return stats, fmt.Errorf("failed to ensure model exists: %w", err)
	}
	if err := s.CreateDeck(deckName); err != nil {
		return stats, fmt.Errorf("failed to create deck: %w", err)
	}

	for _, fc := range flashcards {
		added, err := s.AddFlashcard(deckName, fc)
		switch {
		case err != nil:
			s.logger.Debug("Error adding flashcard: %v", err)
			stats.Failed++
		case added:
			stats.Added++
		default:
			stats.Skipped++
		}
	}

	if stats.Failed > 0 {
		return stats, fmt.Errorf("failed to add %d out of %d flashcards", stats.Failed, len(flashcards))
	}

	s.logger.Info("Exported %d flashcards to %s (%d already there)", stats.Added, deckName, stats.Skipped)
	return stats, nil
}

func (s *Service) sendRequest(req AnkiConnectRequest) (json.RawMessage, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			s.logger.Info("Retrying request (attempt %d/%d)...", attempt+1, MaxRetries)
			time.Sleep(s.retryDelay)
		}

		result, err := s.post(reqBody)
		if err != nil {
			lastErr = err
			continue
		}
		return result, nil
	}

	return nil, fmt.Errorf("after %d attempts: %w", MaxRetries, lastErr)
}

func (s *Service) post(reqBody []byte) (json.RawMessage, error) {
	resp, err := s.client.Post(s.ankiConnectURL, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result struct {
		Error  *string         `json:"error"`
		Result json.RawMessage `json:"result"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("anki error: %s", *result.Error)
	}

	return result.Result, nil
}

func frontField(fc *models.Flashcard) string {
	front := textToHTML(fc.Question)
	if !fc.IsGeneric() {
		front += fmt.Sprintf(`<div class="page">page %d</div>`, fc.ReferencePage+1)
	}
	return front
}

func textToHTML(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}

func getDeckNameUnderscoreSeparatedForTag(deckName string) string {
	return strings.ReplaceAll(strings.TrimSpace(deckName), " ", "_")
}
