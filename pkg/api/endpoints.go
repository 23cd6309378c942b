package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/hazyhaar/pantry-voice/pkg/kit"
	"github.com/hazyhaar/pantry-voice/pkg/pantry"
	"github.com/hazyhaar/pantry-voice/pkg/voice"
)

// Service bundles the collaborators the endpoints work against.
type Service struct {
	Store    *pantry.Store
	Resolver *voice.Resolver
	Lexicon  *voice.Lexicon
}

// Shared request/response types used by both HTTP and MCP transports.

type resolveReq struct {
	Action voice.CandidateAction
}

type resolveResponse struct {
	Resolved voice.ResolvedAction `json:"resolved"`
	Decision voice.Decision       `json:"decision"`
}

// Apply statuses mirror the decision ops from the caller's point of view.
const (
	StatusCreated  = "created"
	StatusUpdated  = "updated"
	StatusRejected = "rejected"
)

type applyResponse struct {
	Status   string               `json:"status"`
	Reason   string               `json:"reason,omitempty"`
	Item     *pantry.Item         `json:"item,omitempty"`
	Resolved voice.ResolvedAction `json:"resolved"`
}

type transcriptReq struct {
	Transcript string
}

type transcriptResponse struct {
	Normalized string `json:"normalized"`
	Singular   string `json:"singular"`
}

type createItemReq struct {
	Name        string
	Category    any
	Quantity    float64
	MinQuantity float64
	Unit        any
}

type itemsResponse struct {
	Items []pantry.Item `json:"items"`
}

type shoppingResponse struct {
	Items []pantry.ShoppingItem `json:"items"`
}

type lexiconResponse struct {
	Units      []pantry.Unit     `json:"units"`
	Categories []pantry.Category `json:"categories"`
}

// resolveEndpoint normalizes a candidate action against the current
// inventory without mutating anything.
func resolveEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*resolveReq)
		items, err := svc.Store.List()
		if err != nil {
			return nil, fmt.Errorf("load inventory: %w", err)
		}
		resolved, decision := svc.Resolver.Decide(items, req.Action)
		return resolveResponse{Resolved: resolved, Decision: decision}, nil
	}
}

// applyEndpoint resolves a candidate action and performs the mutation
// the decision calls for. A rejected command is a normal response, not
// an error.
func applyEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*resolveReq)
		items, err := svc.Store.List()
		if err != nil {
			return nil, fmt.Errorf("load inventory: %w", err)
		}
		resolved, decision := svc.Resolver.Decide(items, req.Action)

		switch decision.Op {
		case voice.OpReject:
			return applyResponse{Status: StatusRejected, Reason: decision.Reason, Resolved: resolved}, nil

		case voice.OpCreate:
			created, err := svc.Store.Insert(*decision.NewItem)
			if err != nil {
				return nil, fmt.Errorf("create item: %w", err)
			}
			return applyResponse{Status: StatusCreated, Item: &created, Resolved: resolved}, nil

		case voice.OpUpdate:
			if err := svc.Store.UpdateQuantity(decision.Item.ID, decision.NewQuantity); err != nil {
				return nil, fmt.Errorf("update quantity: %w", err)
			}
			updated, err := svc.Store.Get(decision.Item.ID)
			if err != nil {
				return nil, fmt.Errorf("reload item: %w", err)
			}
			return applyResponse{Status: StatusUpdated, Item: &updated, Resolved: resolved}, nil
		}
		return nil, fmt.Errorf("unknown decision op %q", decision.Op)
	}
}

func transcriptEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*transcriptReq)
		return transcriptResponse{
			Normalized: voice.NormalizeText(req.Transcript),
			Singular:   voice.SingularizeTranscript(req.Transcript),
		}, nil
	}
}

func listItemsEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		items, err := svc.Store.List()
		if err != nil {
			return nil, err
		}
		return itemsResponse{Items: items}, nil
	}
}

func createItemEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*createItemReq)
		if req.Name == "" {
			return nil, errors.New("name is required")
		}
		if req.Quantity < 0 || req.MinQuantity < 0 {
			return nil, errors.New("quantities must be non-negative")
		}
		item, err := svc.Store.Insert(pantry.Item{
			Name:            req.Name,
			Category:        svc.Lexicon.NormalizeCategory(req.Category),
			CurrentQuantity: req.Quantity,
			MinQuantity:     req.MinQuantity,
			Unit:            svc.Lexicon.NormalizeUnit(req.Unit),
		})
		if err != nil {
			return nil, err
		}
		return item, nil
	}
}

func shoppingListEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		items, err := svc.Store.ShoppingList()
		if err != nil {
			return nil, err
		}
		return shoppingResponse{Items: items}, nil
	}
}

func lexiconEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return lexiconResponse{
			Units:      svc.Lexicon.Units(),
			Categories: svc.Lexicon.Categories(),
		}, nil
	}
}
