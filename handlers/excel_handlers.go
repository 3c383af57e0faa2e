// handlers/excel_handlers.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/rotatijuca/excursio-backend/utils"
)

// DownloadPaymentsReport handles the admin payments workbook download
func (a *API) DownloadPaymentsReport(c *gin.Context) {
	f, filename, err := a.Excel.PaymentsReport()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	writeWorkbook(c, f, filename)
}

// DownloadManifest handles the per-excursion passenger manifest download
func (a *API) DownloadManifest(c *gin.Context) {
	id, ok := excursionID(c)
	if !ok {
		return
	}

	f, filename, err := a.Excel.PassengerManifest(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	writeWorkbook(c, f, filename)
}

func writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write workbook"})
	}
}
