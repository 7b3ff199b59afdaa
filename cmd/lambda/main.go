//go:build lambda

package main

import (
	"git.lost.host/meutraa/riftvibe/internal/game"
	"git.lost.host/meutraa/riftvibe/internal/parser"
	"git.lost.host/meutraa/riftvibe/internal/server"
	"git.lost.host/meutraa/riftvibe/internal/solver"
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	s := &server.DefaultServer{
		Parser: &parser.JSONParser{HitWindow: game.DefaultHitWindow, BeatDivisions: game.DefaultBeatDivisions},
		Solver: &solver.DefaultSolver{},
	}
	lambda.Start(s.Lambda)
}
