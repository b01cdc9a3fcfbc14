package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwtracker/backend/internal/domain"
	"github.com/fwtracker/backend/internal/repository"
)

const maxImportItems = 1000

var filenamePattern = regexp.MustCompile(`[^a-zA-Z0-9_\- ]`)

// ExportResult is a serialized list ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImportItem is one entry of a structured import payload.
type ImportItem struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	Completed   bool    `json:"completed"`
}

// ImportRequest creates a new list from a structured document or, when
// Items is absent, from newline-delimited plain text.
type ImportRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Items       []ImportItem `json:"items"`
	Frameworks  []string     `json:"frameworks"`
	Text        string       `json:"text"`
}

type exportDocument struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Frameworks  []string      `json:"frameworks"`
	Items       []domain.Item `json:"items"`
}

// TransferService implements list export and import.
type TransferService interface {
	// Export serializes an owned list as a JSON document or CSV rows.
	Export(ctx context.Context, userID, listID uint, format string) (*ExportResult, error)
	// Import creates a new list; malformed structured input fails
	// outright rather than importing partially.
	Import(ctx context.Context, userID uint, req ImportRequest) (*domain.List, error)
}

type transferService struct {
	lists      repository.ListRepository
	items      repository.ItemRepository
	frameworks repository.FrameworkRepository
}

// NewTransferService creates a new instance of transferService.
func NewTransferService(lists repository.ListRepository, items repository.ItemRepository, frameworks repository.FrameworkRepository) TransferService {
	return &transferService{lists: lists, items: items, frameworks: frameworks}
}

func (s *transferService) Export(ctx context.Context, userID, listID uint, format string) (*ExportResult, error) {
	list, err := ownedList(ctx, s.lists, userID, listID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByList(ctx, listID)
	if err != nil {
		return nil, err
	}
	keys, err := s.frameworks.KeysForList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []string{}
	}

	safeName := strings.TrimSpace(filenamePattern.ReplaceAllString(list.Name, ""))
	if len(safeName) > 50 {
		safeName = safeName[:50]
	}
	if safeName == "" {
		safeName = "export"
	}

	if format == "csv" {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"title", "description", "priority", "due_date", "completed"})
		for _, item := range items {
			due := ""
			if item.DueDate != nil {
				due = *item.DueDate
			}
			_ = w.Write([]string{
				item.Title,
				item.Description,
				string(item.Priority),
				due,
				strconv.FormatBool(item.Completed),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    safeName + ".csv",
			ContentType: "text/csv",
			Data:        buf.Bytes(),
		}, nil
	}

	doc := exportDocument{
		Name:        list.Name,
		Description: list.Description,
		Frameworks:  keys,
		Items:       items,
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    safeName + ".json",
		ContentType: "application/json",
		Data:        raw,
	}, nil
}

func (s *transferService) Import(ctx context.Context, userID uint, req ImportRequest) (*domain.List, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Imported List"
	}

	var items []domain.Item
	switch {
	case len(req.Items) > 0:
		if len(req.Items) > maxImportItems {
			return nil, fmt.Errorf("%w: too many items (max %d)", ErrValidation, maxImportItems)
		}
		items = make([]domain.Item, 0, len(req.Items))
		for idx, entry := range req.Items {
			title := strings.TrimSpace(entry.Title)
			if title == "" {
				return nil, fmt.Errorf("%w: item %d has no title", ErrValidation, idx+1)
			}
			priority, err := parsePriority(entry.Priority)
			if err != nil {
				return nil, fmt.Errorf("%w: item %d: priority must be low, medium or high", ErrValidation, idx+1)
			}
			dueDate, err := parseDueDate(entry.DueDate)
			if err != nil {
				return nil, fmt.Errorf("%w: item %d: due_date must be YYYY-MM-DD", ErrValidation, idx+1)
			}
			items = append(items, domain.Item{
				Title:       title,
				Description: strings.TrimSpace(entry.Description),
				Priority:    priority,
				DueDate:     dueDate,
				Completed:   entry.Completed,
				Position:    idx,
			})
		}
	case strings.TrimSpace(req.Text) != "":
		for _, line := range strings.Split(req.Text, "\n") {
			title := strings.TrimSpace(line)
			if title == "" {
				continue
			}
			items = append(items, domain.Item{
				Title:    title,
				Priority: domain.PriorityMedium,
				Position: len(items),
			})
		}
		if len(items) > maxImportItems {
			return nil, fmt.Errorf("%w: too many items (max %d)", ErrValidation, maxImportItems)
		}
	default:
		return nil, fmt.Errorf("%w: nothing to import", ErrValidation)
	}

	var keys []string
	for _, key := range req.Frameworks {
		if !domain.ValidFrameworkKey(key) {
			return nil, fmt.Errorf("%w: unknown framework %q", ErrValidation, key)
		}
		keys = append(keys, key)
	}

	list := &domain.List{OwnerID: userID, Name: name, Description: strings.TrimSpace(req.Description)}
	if err := s.lists.CreateWithItems(ctx, list, items, keys); err != nil {
		return nil, err
	}
	return list, nil
}
