package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Neural-Entity/internal/driver"
	"github.com/Garsondee/Neural-Entity/internal/game"
)

func main() {
	var constrained bool
	var seed int64
	flag.BoolVar(&constrained, "constrained", false, "use the small-screen particle and mesh budget")
	flag.Int64Var(&seed, "seed", 42, "RNG seed for the particle field")
	flag.Parse()

	g := game.New(driver.ConfigFor(driver.ProfileFor(constrained), seed))
	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("Neural Entity")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
