package hostels

import (
	"errors"
	"net/http"

	"hostelhub/utils"

	"github.com/julienschmidt/httprouter"
)

// GET /api/hostels?price=&roomType=&location=
func (c *Catalog) ListHostels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	list, err := c.Filter(Criteria{
		PriceRange: q.Get("price"),
		RoomType:   q.Get("roomType"),
		Location:   q.Get("location"),
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"hostels": list, "priceRanges": PriceRanges})
}

// GET /api/hostels/:id
func (c *Catalog) GetHostel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h, err := c.Get(ps.ByName("id"))
	if errors.Is(err, ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Hostel not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h)
}
