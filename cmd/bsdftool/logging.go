package main

import (
	"github.com/urfave/cli"

	"github.com/mrjoshuak/go-bsdf/internal/log"
)

var logger = log.New("bsdftool")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
