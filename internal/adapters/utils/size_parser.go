package utils

import (
	"github.com/hailam/randfiles/internal/ports"
	"github.com/hailam/randfiles/internal/utils"
)

// UtilSizeParser adapts utils.ParseSize to ports.SizeParser.
type UtilSizeParser struct{}

func NewUtilSizeParser() ports.SizeParser {
	return &UtilSizeParser{}
}

func (p *UtilSizeParser) Parse(spec string) (int64, error) {
	return utils.ParseSize(spec)
}
