package view

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/rocketscienceinc/blackstories-backend/internal/entity"
)

const (
	transcriptFont       = "Helvetica"
	transcriptLineHeight = 6.0
)

// WriteTranscript - narrator's copy of the round: story, solution and the whole log.
// Core PDF fonts are cp1252, so characters outside it are approximated by the translator.
func WriteTranscript(w io.Writer, room *entity.Room) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(room.CurrentStory.Title, true)
	pdf.AddPage()

	pdf.SetFont(transcriptFont, "B", 16)
	pdf.MultiCell(0, 9, tr(room.CurrentStory.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont(transcriptFont, "", 9)
	pdf.Cell(0, transcriptLineHeight, tr(fmt.Sprintf("Szoba: %s", room.ID)))
	pdf.Ln(transcriptLineHeight * 1.5)

	writeSection(pdf, tr, "Rejtély", room.CurrentStory.Riddle)
	writeSection(pdf, tr, "Megoldás", room.CurrentStory.Solution)

	pdf.SetFont(transcriptFont, "B", 12)
	pdf.Cell(0, transcriptLineHeight, tr("Napló"))
	pdf.Ln(transcriptLineHeight)

	pdf.SetFont(transcriptFont, "", 11)
	if len(room.ChatHistory) == 0 {
		pdf.MultiCell(0, transcriptLineHeight, tr("(üres)"), "", "L", false)
	}

	for _, line := range buildLog(room.ChatHistory) {
		prefix := "K"
		if line.Style != styleQuestion {
			prefix = "V"
		}

		pdf.MultiCell(0, transcriptLineHeight, tr(fmt.Sprintf("%s  %s: %s", prefix, line.Sender, line.Message)), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	return nil
}

func writeSection(pdf *gofpdf.Fpdf, tr func(string) string, heading, body string) {
	pdf.SetFont(transcriptFont, "B", 12)
	pdf.Cell(0, transcriptLineHeight, tr(heading))
	pdf.Ln(transcriptLineHeight)

	pdf.SetFont(transcriptFont, "", 11)
	pdf.MultiCell(0, transcriptLineHeight, tr(body), "", "L", false)
	pdf.Ln(transcriptLineHeight / 2)
}
