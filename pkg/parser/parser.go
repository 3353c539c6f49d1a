package parser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/ynabel/pkg/models"
)

type FileType string

const (
	LabelsCSV FileType = "labels_csv"
	LabelsXLS FileType = "labels_xls"
)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

func (p *Parser) ProcessBytes(data []byte, filename string) ([]*models.Label, error) {
	fileType := detectType(filename)
	p.logger.Debug("detected file type", "type", fileType, "filename", filename)

	switch fileType {
	case LabelsCSV:
		return p.ParseLabelsCSV(data)
	case LabelsXLS:
		return p.ParseLabelsXLS(data)
	default:
		p.logger.Debug("unknown file type", "filename", filename)
		return nil, fmt.Errorf("unknown file type")
	}
}

func detectType(filename string) FileType {
	lowerFilename := strings.ToLower(filename)
	if strings.HasSuffix(lowerFilename, ".csv") {
		return LabelsCSV
	}
	if strings.HasSuffix(lowerFilename, ".xls") {
		return LabelsXLS
	}
	return ""
}
