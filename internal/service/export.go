package service

import (
	"fmt"
	"strings"

	"github.com/potledger/potledger/internal/domain"
)

// ExportService renders settlement results into shareable plain text — the
// payload a session organizer pastes into the group chat.
type ExportService struct{}

// NewExportService creates a new ExportService.
func NewExportService() *ExportService {
	return &ExportService{}
}

// RenderSettlement produces a human-readable settlement summary: one line
// per player position, one line per instructed payment, and the plan
// metrics. Player names are resolved from the roster; an id with no roster
// entry falls back to the raw id.
func (s *ExportService) RenderSettlement(
	sess *domain.Session,
	players []*domain.Player,
	result *SettlementResult,
	positions []domain.PlayerPosition,
) string {
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.PlayerID] = p.Name
	}
	name := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s — settlement\n", sess.Name)
	fmt.Fprintf(&b, "Calculated at %s\n\n", result.Settlement.CalculatedAt.Format("2006-01-02 15:04"))

	b.WriteString("Positions:\n")
	for _, pos := range positions {
		fmt.Fprintf(&b, "  %s: buy-ins %s, cash-outs %s, chips %s → net %s\n",
			pos.PlayerName,
			domain.FormatCents(pos.TotalBuyInsCents),
			domain.FormatCents(pos.TotalCashOutsCents),
			domain.FormatCents(pos.CurrentChipsCents),
			domain.FormatCentsSigned(pos.NetCents))
	}

	b.WriteString("\nPayments:\n")
	if len(result.Settlement.Payments) == 0 {
		b.WriteString("  (everyone is even — nothing to transfer)\n")
	}
	for _, p := range result.Settlement.Payments {
		fmt.Fprintf(&b, "  %s pays %s %s\n", name(p.FromPlayerID), name(p.ToPlayerID), domain.FormatCents(p.AmountCents))
	}

	fmt.Fprintf(&b, "\n%d transfers instead of %d (%.0f%% fewer)\n",
		result.Settlement.TransactionCount,
		result.Settlement.DirectTransactionCount,
		result.Settlement.ReductionPercent)

	if result.Validation.IsValid {
		b.WriteString("Verified: all positions settle to zero.\n")
	} else {
		b.WriteString("WARNING: plan failed validation — do not pay out.\n")
		for _, e := range result.Validation.Errors {
			if e.Severity == domain.SeverityCritical {
				fmt.Fprintf(&b, "  %s: %s\n", e.Code, e.Message)
			}
		}
	}

	return b.String()
}
