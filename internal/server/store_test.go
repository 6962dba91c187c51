package server

import (
	"strings"
	"testing"
)

func TestCreateGame(t *testing.T) {
	store := NewStore()
	game, err := store.CreateGame(3)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if game.ID != "game-1" {
		t.Errorf("expected id game-1, got %s", game.ID)
	}
	if game.Status != statusLobby || game.CurrentRound != 1 || game.MaxRounds != 3 {
		t.Errorf("unexpected initial state: %s round=%d max=%d", game.Status, game.CurrentRound, game.MaxRounds)
	}
	if len(game.RoomCode) != 4 {
		t.Fatalf("expected 4-char room code, got %q", game.RoomCode)
	}
	for _, r := range game.RoomCode {
		if !strings.ContainsRune(roomCodeAlphabet, r) {
			t.Errorf("room code %q contains %q outside the alphabet", game.RoomCode, r)
		}
	}
}

func TestAddPlayerVIPAndTokens(t *testing.T) {
	store := NewStore()
	game, err := store.CreateGame(3)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	_, first, firstToken, err := store.AddPlayer(game.RoomCode, "Alice")
	if err != nil {
		t.Fatalf("first join: %v", err)
	}
	_, second, secondToken, err := store.AddPlayer(game.RoomCode, "Bob")
	if err != nil {
		t.Fatalf("second join: %v", err)
	}

	if !first.IsVIP || game.VIPID != first.ID {
		t.Errorf("first joiner should be VIP, vip=%t vip_id=%d", first.IsVIP, game.VIPID)
	}
	if second.IsVIP {
		t.Error("second joiner should not be VIP")
	}
	if first.HP != startingHP || first.Role != roleFighter {
		t.Errorf("joiner should start at full hp as a fighter, hp=%d role=%s", first.HP, first.Role)
	}
	if firstToken == "" || secondToken == "" || firstToken == secondToken {
		t.Error("auth tokens should be distinct and non-empty")
	}
}

func TestAddPlayerDuplicateName(t *testing.T) {
	store := NewStore()
	game, err := store.CreateGame(3)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, _, _, err := store.AddPlayer(game.RoomCode, "Alice"); err != nil {
		t.Fatalf("first join: %v", err)
	}
	_, _, _, err = store.AddPlayer(game.RoomCode, "alice")
	if !isConflict(err) {
		t.Fatalf("expected conflict for case-insensitive duplicate, got %v", err)
	}
}

func TestAddPlayerAfterStart(t *testing.T) {
	store := NewStore()
	game, err := store.CreateGame(3)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, err := store.UpdateGame(game.ID, func(game *Game) error {
		game.Status = statusPrompts
		return nil
	}); err != nil {
		t.Fatalf("UpdateGame: %v", err)
	}
	if _, _, _, err := store.AddPlayer(game.RoomCode, "Late"); err == nil {
		t.Fatal("expected join rejection once the game has started")
	}
}

func TestAddPlayerUnknownRoom(t *testing.T) {
	store := NewStore()
	_, _, _, err := store.AddPlayer("ZZZZ", "Alice")
	if !isNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestFindGameByRoomCodeCaseInsensitive(t *testing.T) {
	store := NewStore()
	game, err := store.CreateGame(3)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	found, ok := store.FindGameByRoomCode(" " + strings.ToLower(game.RoomCode) + " ")
	if !ok || found.ID != game.ID {
		t.Fatalf("lowercase lookup failed for %q", game.RoomCode)
	}
}

func TestUpdateGameUnknown(t *testing.T) {
	store := NewStore()
	_, err := store.UpdateGame("game-404", func(game *Game) error { return nil })
	if !isNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
