package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"inspection-report/internal/form"
	"inspection-report/internal/preview"
	"inspection-report/internal/remote"
	"inspection-report/internal/session"
	"inspection-report/internal/wizard"
)

// reportFlags holds everything the submit command reads into a draft.
type reportFlags struct {
	fields map[form.Field]*string

	pin           string
	requireAmount bool

	photos []string

	buyerStamp       string
	buyerStrokes     string
	inspectorStamp   string
	inspectorStrokes string

	previewPath string
	dryRun      bool
}

var submitFlags = newReportFlags()

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Fill in, preview and submit a report",
	Long: `Builds a report from flags, walks it through the three steps (details,
photos and signatures, preview) and submits it.

Signatures are either a stamp image (--buyer-stamp) or pen strokes
(--buyer-strokes "x,y x,y x,y|x,y x,y"), strokes separated by "|".

Example:
  inspect submit --item 의자 --amount 150000 --photo a.jpg --photo b.jpg \
    --buyer 이영희 --buyer-stamp seal.png --preview report.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		s, err := loadSession()
		if err != nil {
			return err
		}

		w, err := fillWizard(cmd.Context(), time.Now(), s, submitFlags, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if submitFlags.previewPath != "" {
			if err := writePreview(submitFlags.previewPath, *w.Preview()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "미리보기 저장: %s\n", submitFlags.previewPath)
		}
		if submitFlags.dryRun {
			writeDraftSummary(cmd.OutOrStdout(), w.Draft)
			return nil
		}

		res, err := w.Submit(cmd.Context(), client, time.Now())
		if res != nil {
			printOutcome(cmd.OutOrStdout(), res)
		}
		return err
	},
}

func init() {
	f := submitCmd.Flags()
	bind := func(field form.Field, name, usage string) {
		f.StringVar(submitFlags.fields[field], name, "", usage)
	}
	bind(form.FieldItemName, "item", "Item name")
	bind(form.FieldItemTotal, "amount", "Total amount, digits with optional commas")
	bind(form.FieldInspectionDate, "inspection-date", "Inspection date, YYYY-MM-DD (default today)")
	bind(form.FieldReceiptDate, "receipt-date", "Receipt date, YYYY-MM-DD (default today)")
	bind(form.FieldRelatedDoc, "related-doc", "Related document")
	bind(form.FieldInspectionPlace, "place", "Inspection place")
	bind(form.FieldBuyerName, "buyer", "Buyer name")
	bind(form.FieldInspectorName, "inspector", "Inspector name")
	bind(form.FieldAuthorName, "author", "Author name when not signed in")
	bind(form.FieldTeamName, "team", "Team name when not signed in")

	f.StringVar(&submitFlags.pin, "pin", "", "4-digit PIN when not signed in; needed to delete the report later")
	f.BoolVar(&submitFlags.requireAmount, "require-amount", false, "Reject reports without a total amount")
	f.StringArrayVar(&submitFlags.photos, "photo", nil, "Photo file, up to 4 (repeatable)")
	f.StringVar(&submitFlags.buyerStamp, "buyer-stamp", "", "Buyer stamp image")
	f.StringVar(&submitFlags.buyerStrokes, "buyer-strokes", "", "Buyer signature strokes")
	f.StringVar(&submitFlags.inspectorStamp, "inspector-stamp", "", "Inspector stamp image")
	f.StringVar(&submitFlags.inspectorStrokes, "inspector-strokes", "", "Inspector signature strokes")
	f.StringVar(&submitFlags.previewPath, "preview", "", "Write the document preview as HTML to this file")
	f.BoolVar(&submitFlags.dryRun, "dry-run", false, "Stop after the preview")
}

func newReportFlags() *reportFlags {
	rf := &reportFlags{fields: make(map[form.Field]*string, len(form.Fields))}
	for _, field := range form.Fields {
		rf.fields[field] = new(string)
	}
	return rf
}

// fillWizard runs the draft up to the preview step. Photo notices are
// written to notices.
func fillWizard(ctx context.Context, now time.Time, s *session.Session, rf *reportFlags, notices io.Writer) (*wizard.Wizard, error) {
	w := wizard.New(now, s, form.Rules{RequireAmount: rf.requireAmount})
	d := w.Draft

	for field, value := range rf.fields {
		v := strings.TrimSpace(*value)
		if v == "" {
			continue
		}
		if field == form.FieldItemTotal {
			v = preview.UnformatAmount(v)
		}
		d.Set(field, v)
	}
	if s == nil {
		d.PIN.Enter(rf.pin)
	}

	if err := w.GoToStep(form.StepPhotos); err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) && verr.Field == form.FieldPIN {
			fmt.Fprintf(notices, "비밀번호: %s\n", pinCells(&d.PIN))
		}
		return nil, err
	}

	files := make([]form.PhotoFile, 0, len(rf.photos))
	for _, p := range rf.photos {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read photo: %w", err)
		}
		files = append(files, form.PhotoFile{Name: filepath.Base(p), Data: data})
	}
	res, err := d.AddPhotos(ctx, files)
	if err != nil {
		return nil, err
	}
	if res.Notice != "" {
		fmt.Fprintln(notices, res.Notice)
	}

	if err := sign(d.Buyer, rf.buyerStamp, rf.buyerStrokes); err != nil {
		return nil, fmt.Errorf("buyer signature: %w", err)
	}
	if err := sign(d.Inspector, rf.inspectorStamp, rf.inspectorStrokes); err != nil {
		return nil, fmt.Errorf("inspector signature: %w", err)
	}

	if err := w.GoToStep(form.StepPreview); err != nil {
		return nil, err
	}
	return w, nil
}

// sign fills one slot. A stamp wins over strokes.
func sign(signer *form.Signer, stampPath, strokes string) error {
	if stampPath != "" {
		raw, err := os.ReadFile(stampPath)
		if err != nil {
			return fmt.Errorf("failed to read stamp: %w", err)
		}
		if err := signer.LoadStamp(raw); err != nil {
			return err
		}
		return signer.SetMode(form.ModeStamp)
	}
	if strokes == "" {
		return nil
	}

	parsed, err := parseStrokes(strokes)
	if err != nil {
		return err
	}
	for _, stroke := range parsed {
		signer.Pad.Begin(stroke[0])
		for _, pt := range stroke[1:] {
			signer.Pad.Move(pt)
		}
		if _, err := signer.Pad.End(); err != nil {
			return err
		}
	}
	return signer.SetMode(form.ModeDraw)
}

// parseStrokes reads "x,y x,y|x,y" into strokes of pad coordinates.
func parseStrokes(s string) ([][]form.Point, error) {
	var strokes [][]form.Point
	for _, part := range strings.Split(s, "|") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		stroke := make([]form.Point, 0, len(fields))
		for _, pair := range fields {
			xs, ys, ok := strings.Cut(pair, ",")
			if !ok {
				return nil, fmt.Errorf("invalid point %q", pair)
			}
			x, err := strconv.ParseFloat(xs, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid point %q: %w", pair, err)
			}
			y, err := strconv.ParseFloat(ys, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid point %q: %w", pair, err)
			}
			stroke = append(stroke, form.Point{X: float32(x), Y: float32(y)})
		}
		strokes = append(strokes, stroke)
	}
	if len(strokes) == 0 {
		return nil, errors.New("no strokes")
	}
	return strokes, nil
}

// pinCells shows which of the four PIN cells hold a digit.
func pinCells(p *form.PINInput) string {
	var b strings.Builder
	for i := 0; i < form.PINLength; i++ {
		if p.Cell(i) != "" {
			b.WriteString("●")
		} else {
			b.WriteString("○")
		}
	}
	return b.String()
}

func writeDraftSummary(out io.Writer, d *form.Draft) {
	values := d.Values()
	for _, f := range form.Fields {
		if v, ok := values[f]; ok {
			fmt.Fprintf(out, "%s: %s\n", f, v)
		}
	}
	fmt.Fprintf(out, "photos: %d\n", len(d.Photos))
}

func writePreview(path string, v preview.DocumentView) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview: %w", err)
	}
	if err := preview.WriteHTML(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printOutcome(out io.Writer, res *remote.SubmitResult) {
	switch res.Outcome {
	case remote.Confirmed:
		fmt.Fprintf(out, "제출 완료: %s\n", res.SheetName)
	case remote.Unconfirmed:
		fmt.Fprintln(out, "제출 요청을 보냈지만 결과를 확인하지 못했습니다. 기록 목록에서 확인해주세요.")
	default:
		return
	}
	label, href := res.Link()
	if href != "" {
		fmt.Fprintf(out, "%s: %s\n", label, href)
	}
}
