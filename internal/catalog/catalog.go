// Package catalog holds the course's worked examples as ready-made experiments.
package catalog

import (
	"context"
	"fmt"

	"github.com/b5strbal/probability-models/pkg/adapters/memory"
	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/b5strbal/probability-models/pkg/dsl"
)

// Entry is a named fixture.
type Entry struct {
	Name        string
	Description string
	Experiment  *domain.Experiment
}

func picking(choices string, repeats int, replacing bool) *domain.Experiment {
	exp, err := domain.Picking(domain.Labels(choices), repeats, replacing)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return exp
}

func marbles() *domain.Experiment {
	b := dsl.New()
	b.Add("Red", "2/5").Then("Red", "1/4").Then("Blue", "3/4")
	b.Add("Blue", "3/5").Then("Red", "1/2").Then("Blue", "1/2")
	return b.MustBuild()
}

func spinner() *domain.Experiment {
	b := dsl.New()
	for _, colour := range []string{"Red", "Orange", "Yellow", "Green", "Blue"} {
		b.Add(colour, "1/5")
	}
	return b.MustBuild()
}

func dieAndCoin() *domain.Experiment {
	coin, err := domain.ExpandString("HT", 1, true)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	die, err := domain.ExpandString("123456", 1, true)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	rolls := make([]domain.Happening, len(die))
	for i, face := range die {
		rolls[i] = domain.NewHappening(face.Name(), face.Probability(), coin...)
	}
	return domain.MustExperiment(rolls...)
}

func weather() *domain.Experiment {
	b := dsl.New()
	b.Add("Sunny", "1/2").Then("Walk", "3/4").Then("Bus", "1/4")
	b.Add("Rainy", "1/3").Then("Bus", "2/3").Then("Taxi", "1/6").Then("Walk", "1/6")
	b.Add("Snowy", "1/6")
	return b.MustBuild()
}

// Entries returns every fixture in presentation order.
func Entries() []Entry {
	return []Entry{
		{"coin-flips", "Flip a coin twice", picking("HT", 2, true)},
		{"coin-purse", "Take one coin from a purse holding two quarters, a dime and a nickel", picking("QQDN", 1, false)},
		{"coin-purse-twice", "Take two coins from the purse without putting the first back", picking("QQDN", 2, false)},
		{"marbles", "Draw two marbles from a bag that is 2/5 red", marbles()},
		{"spinner", "Spin a spinner with five equal sectors", spinner()},
		{"die-and-coin", "Roll a die, then flip a coin", dieAndCoin()},
		{"weather", "Tomorrow's weather and how you get to work", weather()},
	}
}

// All returns the fixtures keyed by name.
func All() map[string]*domain.Experiment {
	out := make(map[string]*domain.Experiment)
	for _, e := range Entries() {
		out[e.Name] = e.Experiment
	}
	return out
}

// Describe returns the description of a fixture, or "" if name is unknown.
func Describe(name string) string {
	for _, e := range Entries() {
		if e.Name == name {
			return e.Description
		}
	}
	return ""
}

// Catalog is a memory store seeded with the fixtures that also serves
// their descriptions.
type Catalog struct {
	*memory.Store
}

// Store returns a fresh catalog store.
func Store() *Catalog {
	return mustCatalog(Entries())
}

// mustCatalog panics on an entry the store rejects, like MustExperiment.
func mustCatalog(entries []Entry) *Catalog {
	s := memory.NewStore()
	for _, e := range entries {
		if e.Name == "" {
			panic("catalog: entry without a name")
		}
		if err := s.Save(context.Background(), e.Name, e.Experiment); err != nil {
			panic(fmt.Sprintf("catalog: %s: %v", e.Name, err))
		}
	}
	return &Catalog{Store: s}
}

// Describe implements ports.Describer.
func (c *Catalog) Describe(ctx context.Context, name string) (string, error) {
	if _, err := c.Get(ctx, name); err != nil {
		return "", err
	}
	return Describe(name), nil
}
