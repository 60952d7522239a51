package dashboard

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/devsparksuporte-web/PotencialCameras/models"
)

// ExportHeader is the first row of every report.
var ExportHeader = []string{
	"Name",
	"IP",
	"Serial",
	"Location",
	"Store",
	"Status",
	"ChannelsTotal",
	"ChannelsWorking",
	"ChannelsBlackscreen",
}

// ExportRows projects cameras onto the report columns, header first.
func ExportRows(cameras []models.Camera) [][]string {
	rows := make([][]string, 0, len(cameras)+1)
	rows = append(rows, ExportHeader)
	for _, c := range cameras {
		rows = append(rows, []string{
			c.Name,
			c.IP,
			c.Serial,
			c.Location,
			c.Store,
			string(c.Status),
			strconv.Itoa(c.ChannelsTotal),
			strconv.Itoa(c.ChannelsWorking),
			strconv.Itoa(c.ChannelsBlackscreen),
		})
	}
	return rows
}

// WriteCSV writes rows as comma separated text; fields holding a comma,
// quote or newline are quoted with inner quotes doubled.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// ExportFilename names a report after the day it was produced.
func ExportFilename(now time.Time) string {
	return "relatorio_cameras_" + now.Format("2006-01-02") + ".csv"
}
