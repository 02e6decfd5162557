package main

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/dolphinhack/hacktools/addrtable"
)

/* Accepts 0x prefixed values for type:"int" and bare hex for type:"hex" */
type intMapper struct {
	base int
}

func (h intMapper) Decode(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	err := ctx.Scan.PopValueInto("int", &value)
	if err != nil {
		return err
	}

	switch target.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := strconv.ParseUint(value, h.base, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetUint(i)
	default:
		i, err := strconv.ParseInt(value, h.base, 64)
		if err != nil {
			return err
		}
		target.SetInt(i)
	}
	return nil
}

/* Shared --game/--region flags overriding detection */
type GameSelect struct {
	Game   string `optional help:"Game to use instead of detecting it."`
	Region string `optional help:"Region to use instead of detecting it."`
}

func (g GameSelect) resolve(c *Context) (addrtable.Game, addrtable.Region, error) {
	game := addrtable.GameInvalid
	region := addrtable.RegionInvalid

	if g.Game == "" || g.Region == "" {
		d := detect(c)
		game, region = d.Game, d.Region
	}

	if g.Game != "" {
		game = addrtable.ParseGame(g.Game)
		if !game.Valid() {
			return game, region, fmt.Errorf("unknown game %q", g.Game)
		}
	}
	if g.Region != "" {
		region = addrtable.ParseRegion(g.Region)
		if !region.Valid() {
			return game, region, fmt.Errorf("unknown region %q", g.Region)
		}
	}

	if !game.Valid() || !region.Valid() {
		return game, region, errors.New("No supported game running, use --game and --region")
	}
	return game, region, nil
}
