package report

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"

	"Pavement/internal/calc/axles"
	"Pavement/internal/calc/design"
	"Pavement/internal/calc/layers"
)

const title = "Memoria de cálculo: pavimento flexible, método UNAM"

// Signer is the engineer responsible for the design.
type Signer struct {
	FullName     string `json:"full_name"`
	License      string `json:"license"`
	Organization string `json:"organization"`
}

type Meta struct {
	Folio  string
	Date   time.Time
	Signer Signer
}

// NewMeta stamps a report with a fresh folio and the current date.
func NewMeta(s Signer) Meta {
	return Meta{Folio: uuid.NewString(), Date: time.Now(), Signer: s}
}

type writer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (pw writer) heading(s string) {
	pw.pdf.Ln(4)
	pw.pdf.SetFont("Helvetica", "B", 12)
	pw.pdf.CellFormat(0, 7, pw.tr(s), "B", 1, "L", false, 0, "")
	pw.pdf.Ln(2)
}

func (pw writer) field(label, value string) {
	pw.pdf.SetFont("Helvetica", "B", 10)
	pw.pdf.CellFormat(70, 6, pw.tr(label), "", 0, "L", false, 0, "")
	pw.pdf.SetFont("Helvetica", "", 10)
	pw.pdf.CellFormat(0, 6, pw.tr(value), "", 1, "L", false, 0, "")
}

func (pw writer) table(widths []float64, head []string, rows [][]string) {
	pw.pdf.SetFont("Helvetica", "B", 9)
	pw.pdf.SetFillColor(230, 230, 230)
	for i, h := range head {
		pw.pdf.CellFormat(widths[i], 6, pw.tr(h), "1", 0, "C", true, 0, "")
	}
	pw.pdf.Ln(-1)
	pw.pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, c := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pw.pdf.CellFormat(widths[i], 6, pw.tr(c), "1", 0, align, false, 0, "")
		}
		pw.pdf.Ln(-1)
	}
}

func passLabel(ok bool) string {
	if ok {
		return "Cumple"
	}
	return "No cumple"
}

// Render writes the calculation report of a design run as PDF.
func Render(w io.Writer, res design.Result, meta Meta) error {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 15, 18)
	pdf.SetAutoPageBreak(true, 18)
	pw := writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Folio %s  -  %d/{nb}", meta.Folio, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AliasNbPages("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, pw.tr(title), "", "C", false)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, pw.tr("Folio: "+meta.Folio+"    Fecha: "+meta.Date.Format("2006-01-02")), "", 1, "C", false, 0, "")

	in := res.Input
	pw.heading("Datos del proyecto")
	pw.field("Camino:", res.Project.Road)
	pw.field("Tramo:", res.Project.Section)
	pw.field("Subtramo:", fmt.Sprintf("km %s a km %s", res.Project.KmStart, res.Project.KmEnd))

	pw.heading("Datos generales")
	pw.field("Tipo de carretera:", string(res.Table.RoadClass))
	pw.field("Carriles por sentido:", fmt.Sprintf("%d (coeficiente %.2f)", in.Lanes, res.Volumes.LaneFactor))
	pw.field("TDPA inicial (ambos sentidos):", fmt.Sprintf("%.0f", in.TDPA))
	pw.field("Vehículos cargados:", fmt.Sprintf("%.1f %%", in.LoadedPct))
	pw.field("Periodo de diseño:", fmt.Sprintf("%.0f años", in.LifeYears))
	pw.field("Tasa de crecimiento anual:", fmt.Sprintf("%.2f %%", in.GrowthRatePct))
	pw.field("Coeficiente de acumulación (CT):", fmt.Sprintf("%.4f", res.GrowthFactor))
	pw.field("Nivel de confianza:", fmt.Sprintf("%.1f %%", in.ConfidencePct))

	pw.heading("Composición vehicular")
	comp := axles.ToComposition(in.Composition)
	var crows [][]string
	for _, v := range comp.NonZero() {
		crows = append(crows, []string{string(v), fmt.Sprintf("%.2f", comp[v])})
	}
	crows = append(crows, []string{"Total", fmt.Sprintf("%.2f", res.CompositionSum)})
	pw.table([]float64{40, 30}, []string{"Vehículo", "%"}, crows)

	pw.heading("Ejes del primer año")
	var arows [][]string
	for _, r := range res.Table.Rows {
		if r.FirstYear == 0 {
			continue
		}
		arows = append(arows, []string{
			r.Description,
			r.Condition.Label(),
			fmt.Sprintf("%.1f", r.ContactPressure),
			fmt.Sprintf("%.2f", r.LoadTon),
			fmt.Sprintf("%.2f", r.LoadKip),
			fmt.Sprintf("%.0f", r.FirstYear),
		})
	}
	pw.table([]float64{40, 25, 25, 25, 25, 35},
		[]string{"Eje", "Condición", "q (kg/cm²)", "Carga (t)", "Carga (kip)", "Ejes 1er año"}, arows)

	pw.heading("Confiabilidad")
	pw.field("U:", fmt.Sprintf("%.4f", res.Reliability.U))
	pw.field("VRS0 base:", fmt.Sprintf("%.4f", res.Reliability.VRS0Base))
	pw.field("VRS0 sub-base y subrasante:", fmt.Sprintf("%.4f", res.Reliability.VRS0Sub))

	pw.heading("Estructura")
	var lrows [][]string
	for _, l := range res.Layers {
		zg, err := layers.EquivalentGravel([]layers.Layer{l})
		if err != nil {
			return err
		}
		lrows = append(lrows, []string{l.Name, fmt.Sprintf("%.1f", l.ThicknessCM), fmt.Sprintf("%.1f", zg)})
	}
	pw.table([]float64{70, 35, 45}, []string{"Capa", "Espesor (cm)", "Grava equivalente (cm)"}, lrows)

	pw.heading("Revisión por interfaz")
	var irows [][]string
	for _, c := range res.Checks {
		irows = append(irows, []string{
			c.Name,
			fmt.Sprintf("%.1f", c.DepthCM),
			fmt.Sprintf("%.0f", c.CBR),
			fmt.Sprintf("%.3f", c.VRS0),
			fmt.Sprintf("%.4g", c.ESALs),
			fmt.Sprintf("%.4f", c.Fz),
			fmt.Sprintf("%.1f", c.RequiredZG),
			fmt.Sprintf("%.1f", c.ActualZG),
			passLabel(c.Pass),
		})
	}
	pw.table([]float64{34, 13, 12, 16, 22, 17, 20, 20, 21},
		[]string{"Interfaz", "Z", "CBR", "VRS0", "ESALs", "fz", "ZG req.", "ZG real", "Resultado"}, irows)
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, pw.tr("Dictamen: "+passLabel(res.Pass)), "", 1, "L", false, 0, "")

	if len(res.Warnings) > 0 {
		pw.heading("Observaciones")
		pdf.SetFont("Helvetica", "", 9)
		for _, msg := range res.Warnings {
			pdf.MultiCell(0, 5, pw.tr("- "+msg), "", "L", false)
		}
	}

	pdf.Ln(16)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "______________________________", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, pw.tr(meta.Signer.FullName), "", 1, "C", false, 0, "")
	if meta.Signer.License != "" {
		pdf.CellFormat(0, 5, pw.tr("Cédula profesional "+meta.Signer.License), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 5, pw.tr(meta.Signer.Organization), "", 1, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building report: %w", err)
	}
	return pdf.Output(w)
}
