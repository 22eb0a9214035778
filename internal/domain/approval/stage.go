package approval

import "github.com/jhoicas/dealflow-api/internal/domain/entity"

// NextStage etapa de una oferta directa en función de las dos pistas de asesor y la etapa actual.
// Nunca reduce la etapa; con una pista rechazada la etapa queda congelada.
//
//	inversionista pendiente                      → 1
//	inversionista despejada, startup pendiente   → 2
//	ambas despejadas (approved o not_required)   → 3
//
// La etapa 4 solo se alcanza por negociación.
func NextStage(current int, investorTrack, startupTrack entity.ApprovalStatus) int {
	if investorTrack == entity.ApprovalRejected || startupTrack == entity.ApprovalRejected {
		return current
	}
	var target int
	switch {
	case !investorTrack.Cleared():
		target = entity.StageInvestorAdvisor
	case !startupTrack.Cleared():
		target = entity.StageStartupAdvisor
	default:
		target = entity.StageReady
	}
	if current > target {
		return current
	}
	return target
}

// InitialStage etapa de creación de una oferta según qué pistas requieren asesor.
func InitialStage(investorTrack, startupTrack entity.ApprovalStatus) int {
	return NextStage(0, investorTrack, startupTrack)
}
