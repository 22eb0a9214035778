package approval

import (
	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

var _ Deal = OpportunityDeal{}

// OpportunityDeal variante de oportunidad de co-inversión.
// Etapa 1: asesor del líder. Etapa 2: asesor de la startup y luego la startup. Etapa 4: aprobada.
type OpportunityDeal struct {
	Opportunity entity.CoInvestmentOpportunity
}

func (d OpportunityDeal) Kind() Kind     { return KindOpportunity }
func (d OpportunityDeal) DealID() string { return d.Opportunity.ID }

func (d OpportunityDeal) Rejected() bool {
	o := d.Opportunity
	return o.LeadInvestorAdvisorStatus == entity.ApprovalRejected ||
		o.StartupAdvisorStatus == entity.ApprovalRejected ||
		o.StartupApprovalStatus == entity.ApprovalRejected
}

func (d OpportunityDeal) EvaluateGate(actor entity.Actor) GateResult {
	o := d.Opportunity
	if o.ID == "" {
		return deny(domain.ErrInvalidReference, "oportunidad sin id")
	}
	if r := checkActor(actor); r != nil {
		return *r
	}
	var gate Gate
	switch actor.Role {
	case entity.RoleInvestorAdvisor:
		if o.LeadInvestorAdvisorID != "" && o.LeadInvestorAdvisorID != actor.PartyID {
			return deny(domain.ErrUnauthorizedAction, "no es el asesor del inversionista líder")
		}
		gate = GateLeadInvestorAdvisor
	case entity.RoleStartupAdvisor:
		if o.StartupAdvisorID != "" && o.StartupAdvisorID != actor.PartyID {
			return deny(domain.ErrUnauthorizedAction, "no es el asesor de la startup")
		}
		gate = GateStartupAdvisor
	case entity.RoleStartup:
		if o.StartupID != actor.PartyID {
			return deny(domain.ErrUnauthorizedAction, "no es la startup de esta oportunidad")
		}
		gate = GateStartup
	default:
		return deny(domain.ErrUnauthorizedAction, "el rol no tiene compuerta en oportunidades")
	}
	if o.Status == entity.OpportunityClosed || d.Rejected() {
		return deny(domain.ErrStaleState, "la oportunidad está cerrada")
	}
	open := false
	switch gate {
	case GateLeadInvestorAdvisor:
		open = o.Stage == entity.OpportunityStageLeadAdvisor && o.LeadInvestorAdvisorStatus == entity.ApprovalPending
	case GateStartupAdvisor:
		open = o.Stage == entity.OpportunityStageStartup && o.StartupAdvisorStatus == entity.ApprovalPending
	case GateStartup:
		open = o.Stage == entity.OpportunityStageStartup && o.StartupAdvisorStatus.Cleared() &&
			o.StartupApprovalStatus == entity.ApprovalPending
	}
	if !open {
		return deny(domain.ErrStaleState, "la compuerta "+string(gate)+" no está pendiente")
	}
	return allow(gate)
}

func (d OpportunityDeal) Decide(actor entity.Actor, decision Decision) (Deal, error) {
	gate, err := decide(d, actor, decision)
	if err != nil {
		return nil, err
	}
	next := d.Opportunity
	switch gate {
	case GateLeadInvestorAdvisor:
		next.LeadInvestorAdvisorStatus = decision.status()
	case GateStartupAdvisor:
		next.StartupAdvisorStatus = decision.status()
	case GateStartup:
		next.StartupApprovalStatus = decision.status()
	}
	if decision == DecisionReject {
		next.Status = entity.OpportunityClosed
		return OpportunityDeal{Opportunity: next}, nil
	}
	next.Stage = OpportunityStage(next.Stage, next.LeadInvestorAdvisorStatus, next.StartupAdvisorStatus, next.StartupApprovalStatus)
	return OpportunityDeal{Opportunity: next}, nil
}

// OpportunityStage etapa de la oportunidad según sus tres aprobaciones; nunca retrocede.
func OpportunityStage(current int, lead, startupAdvisor, startup entity.ApprovalStatus) int {
	var target int
	switch {
	case !lead.Cleared():
		target = entity.OpportunityStageLeadAdvisor
	case startupAdvisor.Cleared() && startup == entity.ApprovalApproved:
		target = entity.OpportunityStageApproved
	default:
		target = entity.OpportunityStageStartup
	}
	if current > target {
		return current
	}
	return target
}
