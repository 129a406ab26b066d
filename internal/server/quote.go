package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	quotedomain "github.com/jacobe603/quote-builder/internal/quote/domain"
	"github.com/jacobe603/quote-builder/internal/quote/format"
	"github.com/jacobe603/quote-builder/internal/quote/tree"
)

type displayTotals struct {
	TotalNet        string `json:"total_net"`
	BidPrice        string `json:"bid_price"`
	SalesCommission string `json:"sales_commission"`
	Margin          string `json:"margin"`
}

type totalsResponse struct {
	*quotedomain.Rollup
	Display struct {
		Quote    displayTotals            `json:"quote"`
		Packages map[string]displayTotals `json:"packages"`
	} `json:"display"`
}

func (s *Server) GetQuote(c *gin.Context) {
	view, err := s.quoteSvc.View(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (s *Server) GetQuoteTotals(c *gin.Context) {
	roll, err := s.quoteSvc.Totals(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := totalsResponse{Rollup: roll}
	resp.Display.Quote = display(roll.Quote)
	resp.Display.Packages = make(map[string]displayTotals, len(roll.Packages))
	for id, t := range roll.Packages {
		resp.Display.Packages[id] = display(t)
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProjectInfo(c *gin.Context) {
	var req quotedomain.ProjectInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	snap, err := s.quoteSvc.UpdateProjectInfo(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snap.Project})
}

// respondView answers a structural change with the re-derived tree, since
// every address after the change point may have moved.
func respondView(c *gin.Context, snap *quotedomain.Snapshot) {
	c.JSON(http.StatusOK, gin.H{"data": tree.View(snap)})
}

func display(t quotedomain.Totals) displayTotals {
	return displayTotals{
		TotalNet:        format.Currency(t.TotalNet),
		BidPrice:        format.Currency(t.BidPrice),
		SalesCommission: format.Currency(t.SalesCommission),
		Margin:          format.Percent(margin(t)),
	}
}

// margin is the share of the bid left after total net; 0 for an empty bid.
func margin(t quotedomain.Totals) float64 {
	if t.BidPrice.IsZero() {
		return 0
	}
	return t.BidPrice.Sub(t.TotalNet).Div(t.BidPrice).InexactFloat64()
}
