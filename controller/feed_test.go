package controller

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/fabianojp06/pelada-hero/db"
	"github.com/fabianojp06/pelada-hero/db/mockdb"
	"github.com/fabianojp06/pelada-hero/model"
)

func TestAddFeedPost(t *testing.T) {
	tests := map[string]struct {
		content  string
		addEx    bool
		expected error
	}{
		"success":          {content: "Bora pro jogo!", addEx: true, expected: nil},
		"trims whitespace": {content: "  gol de placa  ", addEx: true, expected: nil},
		"empty content":    {content: "   ", addEx: false, expected: ErrInvalidInput},
		"too long":         {content: strings.Repeat("a", maxPostLength+1), addEx: false, expected: ErrInvalidInput},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			if tc.addEx {
				mockDB.On("GetMatch", mock.Anything, "m1").Return(publicMatch(), nil)
				mockDB.On("AddFeedPost", mock.Anything, mock.MatchedBy(func(p *model.FeedPost) bool {
					return p.MatchID == "m1" && p.AuthorID == "u1" && p.Content == strings.TrimSpace(tc.content)
				})).Return(nil)
			}

			ctrl := newTestController(t, mockDB)
			_, err := ctrl.AddFeedPost(context.Background(), "m1", "u1", tc.content, "")
			if !errors.Is(err, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, err)
			}
			mockDB.AssertExpectations(t)
		})
	}
}

func TestAddFeedPost_missingMatch(t *testing.T) {
	mockDB := &mockdb.DB{}
	mockDB.On("GetMatch", mock.Anything, "nope").Return(nil, db.ErrMatchNotFound)

	ctrl := newTestController(t, mockDB)
	_, err := ctrl.AddFeedPost(context.Background(), "nope", "u1", "oi", "")
	if !errors.Is(err, db.ErrMatchNotFound) {
		t.Errorf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestReactToPost(t *testing.T) {
	post := &model.FeedPost{ID: "p1", MatchID: "m1", AuthorID: "u2", Content: "golaco"}

	tests := map[string]struct {
		kind     model.ReactionKind
		result   model.ReactionKind
		toggleEx bool
		expected error
	}{
		"sets a reaction":       {kind: model.ReactionBall, result: model.ReactionBall, toggleEx: true, expected: nil},
		"same kind clears it":   {kind: model.ReactionApplause, result: model.ReactionUnknown, toggleEx: true, expected: nil},
		"unknown kind rejected": {kind: model.ReactionUnknown, toggleEx: false, expected: ErrInvalidInput},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			if tc.toggleEx {
				mockDB.On("GetFeedPost", mock.Anything, "p1").Return(post, nil)
				mockDB.On("ToggleReaction", mock.Anything, "p1", "u1", tc.kind).Return(tc.result, nil)
			}

			ctrl := newTestController(t, mockDB)
			got, err := ctrl.ReactToPost(context.Background(), "p1", "u1", tc.kind)
			if !errors.Is(err, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, err)
			}
			if err == nil && got != tc.result {
				t.Errorf("resulting kind = %s, expected %s", got, tc.result)
			}
			mockDB.AssertExpectations(t)
		})
	}
}

func TestReactToPost_missingPost(t *testing.T) {
	mockDB := &mockdb.DB{}
	mockDB.On("GetFeedPost", mock.Anything, "gone").Return(nil, db.ErrPostNotFound)

	ctrl := newTestController(t, mockDB)
	_, err := ctrl.ReactToPost(context.Background(), "gone", "u1", model.ReactionBall)
	if !errors.Is(err, db.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}
