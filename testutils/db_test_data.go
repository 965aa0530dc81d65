package testutils

import (
	"context"
	"log"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/fabianojp06/pelada-hero/containers"
	"github.com/fabianojp06/pelada-hero/db"
	"github.com/fabianojp06/pelada-hero/model"
)

var (
	Rafa = &model.Player{
		ID:       "p-rafa",
		Name:     "Rafael Moreira",
		Nickname: "Rafa",
		Position: model.POS_MEI,
		Overall:  85,
		Attributes: model.Attributes{
			Pace: 82, Shooting: 80, Passing: 88, Dribbling: 86, Defending: 55, Physical: 70,
		},
	}
	Dudu = &model.Player{
		ID:       "p-dudu",
		Name:     "Eduardo Farias",
		Nickname: "Dudu",
		Position: model.POS_ATA,
		Overall:  82,
		Attributes: model.Attributes{
			Pace: 90, Shooting: 85, Passing: 70, Dribbling: 84, Defending: 40, Physical: 72,
		},
	}
	Careca = &model.Player{
		ID:       "p-careca",
		Name:     "Marcos Silveira",
		Nickname: "Careca",
		Position: model.POS_ZAG,
		Overall:  79,
		Attributes: model.Attributes{
			Pace: 65, Shooting: 50, Passing: 68, Dribbling: 55, Defending: 88, Physical: 85,
		},
	}
	Pedrao = &model.Player{
		ID:       "p-pedrao",
		Name:     "Pedro Henrique",
		Nickname: "Pedrão",
		Position: model.POS_GOL,
		Overall:  77,
		Attributes: model.Attributes{
			Pace: 50, Shooting: 35, Passing: 60, Dribbling: 40, Defending: 80, Physical: 82,
		},
	}
	Leo = &model.Player{
		ID:       "p-leo",
		Name:     "Leonardo Costa",
		Nickname: "Léo",
		Position: model.POS_LAT,
		Overall:  80,
		Attributes: model.Attributes{
			Pace: 88, Shooting: 62, Passing: 75, Dribbling: 74, Defending: 76, Physical: 73,
		},
	}
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	if err := InsertTestPlayers(db); err != nil {
		log.Fatalf("error populating db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

func InsertTestPlayers(db db.DB) error {
	players := []*model.Player{
		Rafa,
		Dudu,
		Careca,
		Pedrao,
		Leo,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, p := range players {
		err := db.SavePlayer(ctx, p)
		if err != nil {
			return err
		}
	}

	return nil
}

// NewTestMatch returns an unsaved match owned by organizerID, one hour out.
func NewTestMatch(organizerID string) *model.Match {
	return &model.Match{
		Title:          "Pelada de quinta",
		Location:       "Arena Society",
		Address:        "Rua das Laranjeiras, 120",
		Date:           time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		Price:          1500,
		PlayersPerSide: 5,
		MaxPlayers:     10,
		Public:         true,
		OrganizerID:    organizerID,
	}
}
