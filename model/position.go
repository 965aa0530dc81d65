package model

import (
	"strings"
)

type Position string

const (
	POS_UNKNOWN Position = "UNK"
	POS_GOL     Position = "GOL" // goalkeeper
	POS_ZAG     Position = "ZAG" // center-back
	POS_LAT     Position = "LAT" // fullback
	POS_VOL     Position = "VOL" // defensive mid
	POS_MEI     Position = "MEI" // mid
	POS_ATA     Position = "ATA" // attacker
)

func ParsePosition(pos string) Position {
	pos = strings.ToLower(pos)
	switch pos {
	case "gol":
		return POS_GOL
	case "zag":
		return POS_ZAG
	case "lat":
		return POS_LAT
	case "vol":
		return POS_VOL
	case "mei":
		return POS_MEI
	case "ata":
		return POS_ATA
	default:
		return POS_UNKNOWN
	}
}
