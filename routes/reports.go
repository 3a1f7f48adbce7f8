package routes

import (
	"fmt"
	"time"

	"github.com/himmu2625/baithkaGhar-sub018/utils"

	"github.com/kataras/iris/v12"
	"github.com/xuri/excelize/v2"
)

func parseReportWindow(ctx iris.Context) (propertyID uint, start, end time.Time, ok bool) {
	propertyID = uint(ctx.URLParamUint64("propertyID"))
	if propertyID == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "propertyID is required")
		return 0, time.Time{}, time.Time{}, false
	}
	var err error
	start, err = time.Parse(dateLayout, ctx.URLParam("startDate"))
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid startDate format")
		return 0, time.Time{}, time.Time{}, false
	}
	end, err = time.Parse(dateLayout, ctx.URLParam("endDate"))
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "bad_request", "invalid endDate format")
		return 0, time.Time{}, time.Time{}, false
	}
	return propertyID, start, end, true
}

// GetAvailabilityReport aggregates per-room occupancy over the window for
// the staff dashboard.
func GetAvailabilityReport(ctx iris.Context) {
	propertyID, start, end, ok := parseReportWindow(ctx)
	if !ok {
		return
	}

	report, err := engine.GetAvailabilityReport(ctx.Request().Context(), propertyID, start, end)
	if err != nil {
		writeEngineError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"data": report})
}

// ExportAvailabilityReport renders the same aggregate as a spreadsheet.
func ExportAvailabilityReport(ctx iris.Context) {
	propertyID, start, end, ok := parseReportWindow(ctx)
	if !ok {
		return
	}

	report, err := engine.GetAvailabilityReport(ctx.Request().Context(), propertyID, start, end)
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Availability"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Room", "Type", "Floor", "Nights Booked", "Occupancy", "Projected Revenue", "On Hold", "Fully Available"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, r := range report.Rooms {
		values := []interface{}{
			r.RoomNumber, r.TypeName, r.Floor, r.NightsBooked,
			fmt.Sprintf("%.0f%%", r.OccupancyRate*100), r.ProjectedRevenue,
			r.OnHold, r.FullyAvailable,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	summaryRow := len(report.Rooms) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	f.SetCellValue(sheet, cell, fmt.Sprintf("Occupancy %.0f%% | Projected revenue %.2f | %d of %d rooms fully available",
		report.OccupancyRate*100, report.ProjectedRevenue, report.FullyAvailable, report.TotalRooms))

	filename := fmt.Sprintf("availability_%d_%s_%s.xlsx", propertyID, start.Format(dateLayout), end.Format(dateLayout))
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.ContentType("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(ctx.ResponseWriter()); err != nil {
		utils.CreateInternalServerError(ctx)
	}
}
