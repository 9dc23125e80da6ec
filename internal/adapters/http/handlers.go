package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bunganutz/internal/application/orchestrators"
	"bunganutz/internal/application/projections"
	stayDomain "bunganutz/internal/domain/stay"
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as the JSON response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// handleMembers handles GET (roster list) and POST (register) for /api/members.
func handleMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		members, err := stores.MemberStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, map[string]any{"Members": members})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.RegisterMemberInput{}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		deps := orchestrators.RegisterMemberDeps{
			MemberStore: stores.MemberStore,
		}
		id, err := orchestrators.ExecuteRegisterMember(ctx, input, deps)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, map[string]string{"ID": id})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleMemberUpdate handles POST /api/members/update.
func handleMemberUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.UpdateMemberInput{}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	deps := orchestrators.RegisterMemberDeps{
		MemberStore: stores.MemberStore,
	}
	if err := orchestrators.ExecuteUpdateMember(ctx, input, deps); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStays handles GET (list) and POST (schedule) for /api/stays.
func handleStays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		stays, err := stores.StayStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, map[string]any{"Stays": stays})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.ScheduleStayInput{}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		deps := orchestrators.ScheduleStayDeps{
			StayStore:   stores.StayStore,
			MemberStore: stores.MemberStore,
			EmailSender: emailSender,
		}
		id, err := orchestrators.ExecuteScheduleStay(ctx, input, deps)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, map[string]string{"ID": id})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleStayUpdate handles POST /api/stays/update.
func handleStayUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.UpdateStayInput{}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	deps := orchestrators.ScheduleStayDeps{
		StayStore:   stores.StayStore,
		MemberStore: stores.MemberStore,
		EmailSender: emailSender,
	}
	if err := orchestrators.ExecuteUpdateStay(ctx, input, deps); err != nil {
		if errors.Is(err, stayDomain.ErrNotFound) {
			http.Error(w, "stay not found", http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStayCancel handles POST /api/stays/cancel.
func handleStayCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.CancelStayInput{}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	deps := orchestrators.ScheduleStayDeps{
		StayStore:   stores.StayStore,
		MemberStore: stores.MemberStore,
	}
	if err := orchestrators.ExecuteCancelStay(ctx, input, deps); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePresence handles GET /api/presence?date=YYYY-MM-DD.
func handlePresence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := projections.GetPresenceQuery{
		Date: r.URL.Query().Get("date"),
	}
	deps := projections.GetPresenceDeps{
		StayStore:   stores.StayStore,
		MemberStore: stores.MemberStore,
		DayGuests:   stores.DayGuestStore,
	}

	result, err := projections.QueryGetPresence(ctx, query, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleOccupancy handles GET /api/occupancy?start=YYYY-MM-DD&end=YYYY-MM-DD.
func handleOccupancy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := projections.GetOccupancyRangeQuery{
		StartDate: r.URL.Query().Get("start"),
		EndDate:   r.URL.Query().Get("end"),
	}
	deps := projections.GetOccupancyRangeDeps{
		StayStore:   stores.StayStore,
		MemberStore: stores.MemberStore,
		Board:       stores.BoardStore,
	}

	result, err := projections.QueryGetOccupancyRange(ctx, query, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleBedBoard handles GET /api/beds/board?date=YYYY-MM-DD.
func handleBedBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := projections.GetBedBoardQuery{
		Date: r.URL.Query().Get("date"),
	}
	deps := projections.GetBedBoardDeps{
		StayStore:   stores.StayStore,
		MemberStore: stores.MemberStore,
		Board:       stores.BoardStore,
	}

	result, err := projections.QueryGetBedBoard(ctx, query, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleBedAssign handles POST /api/beds/assign. Sending the available
// sentinel as BedID releases the person's slot for the night.
func handleBedAssign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.AssignBedInput{}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	deps := orchestrators.AssignBedDeps{Board: stores.BoardStore}
	if err := orchestrators.ExecuteAssignBed(ctx, input, deps); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleYard handles POST (add spaces) and DELETE (remove one) for /api/yard.
func handleYard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deps := orchestrators.YardSpacesDeps{Board: stores.BoardStore}

	if r.Method == "POST" {
		input := orchestrators.AddYardSpacesInput{}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if err := orchestrators.ExecuteAddYardSpaces(ctx, input, deps); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.Method == "DELETE" {
		input := orchestrators.RemoveYardSpaceInput{}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if err := orchestrators.ExecuteRemoveYardSpace(ctx, input, deps); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleMealBoard handles GET /api/meals/board?date=YYYY-MM-DD.
func handleMealBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := projections.GetMealBoardQuery{
		Date: r.URL.Query().Get("date"),
	}
	deps := projections.GetMealBoardDeps{
		StayStore:   stores.StayStore,
		MemberStore: stores.MemberStore,
		Assignments: stores.AssignmentStore,
		DayGuests:   stores.DayGuestStore,
	}

	result, err := projections.QueryGetMealBoard(ctx, query, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleMealSummary handles GET /api/meals/summary?start=YYYY-MM-DD&end=YYYY-MM-DD.
func handleMealSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := projections.GetMealSummaryQuery{
		StartDate: r.URL.Query().Get("start"),
		EndDate:   r.URL.Query().Get("end"),
	}
	deps := projections.GetMealSummaryDeps{
		StayStore:   stores.StayStore,
		Assignments: stores.AssignmentStore,
		DayGuests:   stores.DayGuestStore,
	}

	result, err := projections.QueryGetMealSummary(ctx, query, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleMealMenu handles POST /api/meals/menu.
func handleMealMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SaveMenuInput{}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	deps := orchestrators.MealPlanDeps{
		Assignments: stores.AssignmentStore,
		DayGuests:   stores.DayGuestStore,
	}
	if err := orchestrators.ExecuteSaveMenu(ctx, input, deps); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMealCooks handles POST (sign up) and DELETE (withdraw) for
// /api/meals/cooks. Signing up the on-your-own sentinel marks the meal
// decided with nobody cooking.
func handleMealCooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deps := orchestrators.MealPlanDeps{
		Assignments: stores.AssignmentStore,
		DayGuests:   stores.DayGuestStore,
	}

	if r.Method == "POST" {
		input := orchestrators.AddCookInput{}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if err := orchestrators.ExecuteAddCook(ctx, input, deps); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.Method == "DELETE" {
		input := orchestrators.RemoveCookInput{}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if err := orchestrators.ExecuteRemoveCook(ctx, input, deps); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleDayGuests handles POST (sign up) and DELETE (withdraw) for
// /api/day-guests.
func handleDayGuests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deps := orchestrators.MealPlanDeps{
		Assignments: stores.AssignmentStore,
		DayGuests:   stores.DayGuestStore,
	}

	input := orchestrators.DayGuestInput{}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "POST":
		if err := orchestrators.ExecuteAddDayGuest(ctx, input, deps); err != nil {
			internalError(w, err)
			return
		}
	case "DELETE":
		if err := orchestrators.ExecuteRemoveDayGuest(ctx, input, deps); err != nil {
			internalError(w, err)
			return
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleForecast handles GET /api/forecast?start=YYYY-MM-DD&end=YYYY-MM-DD.
func handleForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := projections.GetForecastQuery{
		StartDate: r.URL.Query().Get("start"),
		EndDate:   r.URL.Query().Get("end"),
	}
	deps := projections.GetForecastDeps{
		Provider: weatherProvider,
		Lat:      cottageLat,
		Lon:      cottageLon,
	}

	result, err := projections.QueryGetForecast(ctx, query, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// registerRoutes attaches every API endpoint to the mux.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/members", handleMembers)
	mux.HandleFunc("/api/members/update", handleMemberUpdate)
	mux.HandleFunc("/api/stays", handleStays)
	mux.HandleFunc("/api/stays/update", handleStayUpdate)
	mux.HandleFunc("/api/stays/cancel", handleStayCancel)
	mux.HandleFunc("/api/presence", handlePresence)
	mux.HandleFunc("/api/occupancy", handleOccupancy)
	mux.HandleFunc("/api/beds/board", handleBedBoard)
	mux.HandleFunc("/api/beds/assign", handleBedAssign)
	mux.HandleFunc("/api/yard", handleYard)
	mux.HandleFunc("/api/meals/board", handleMealBoard)
	mux.HandleFunc("/api/meals/summary", handleMealSummary)
	mux.HandleFunc("/api/meals/menu", handleMealMenu)
	mux.HandleFunc("/api/meals/cooks", handleMealCooks)
	mux.HandleFunc("/api/day-guests", handleDayGuests)
	mux.HandleFunc("/api/forecast", handleForecast)
}
