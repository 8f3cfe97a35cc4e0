// sim/simulator.go
package sim

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/fuel-sim/sim/trace"
)

// ServiceEpsilon separates an arrival or a service end from the ServiceStart it triggers.
const ServiceEpsilon = time.Second

// Simulator is the core object that holds simulation time, station state, and the event loop.
type Simulator struct {
	Clock time.Time
	Start time.Time
	End   time.Time // events later than End are discarded

	Station *Station
	// Trace collects allocation and loss decisions when its level is "decisions".
	Trace *trace.SimulationTrace
	// Observer, when set, is called after every executed event.
	Observer func(Event)
	// Arrivals counts cars generated so far.
	Arrivals int

	seed           int64
	queue          *EventQueue
	reportSchedule cron.Schedule
	waits          []float64 // minutes from arrival to service start, per fueled car
	sink           Sink
	ran            bool
}

// NewSimulator builds a simulator for cfg, writing trace lines to sink.
// cfg is trusted: callers run Config.Validate first.
func NewSimulator(cfg Config, sink Sink) (*Simulator, error) {
	if sink == nil {
		sink = DiscardSink
	}
	start, err := cfg.StartTime()
	if err != nil {
		return nil, err
	}
	schedule, err := ParseReportSchedule(cfg.ReportSchedule)
	if err != nil {
		return nil, err
	}
	rng := NewRandomSource(NewSimulationKey(cfg.Seed))
	station, err := NewStation(cfg.Station, rng, sink)
	if err != nil {
		return nil, fmt.Errorf("building station: %w", err)
	}

	level := trace.TraceLevel(cfg.TraceLevel)
	if level == "" {
		level = trace.TraceLevelNone
	}

	return &Simulator{
		Clock:          start,
		Start:          start,
		End:            start.AddDate(0, 0, cfg.Days),
		Station:        station,
		Trace:          trace.NewSimulationTrace(level),
		seed:           cfg.Seed,
		queue:          NewEventQueue(),
		reportSchedule: schedule,
		sink:           sink,
	}, nil
}

// Schedule pushes an event into the simulator's event queue.
func (sim *Simulator) Schedule(ev Event) {
	sim.queue.Schedule(ev)
}

// Pending returns the number of scheduled, not yet executed events.
func (sim *Simulator) Pending() int {
	return sim.queue.Len()
}

// Run seeds the first arrival and the report events, drains the event loop,
// writes the final report and returns the run summary. Run may be called once.
func (sim *Simulator) Run() *Summary {
	if sim.ran {
		panic("Simulator.Run called twice")
	}
	sim.ran = true

	sim.sink.Infof("Simulation: %s .. %s", sim.Start.Format(StartLayout), sim.End.Format(StartLayout))

	first := sim.Station.Sampler.SampleInterArrival(sim.Start)
	sim.Schedule(NewArrivalEvent(sim.Start.Add(first)))
	sim.scheduleReports()

	sim.RunEvents()
	sim.writeFinalReport()
	logrus.Infof("[sim %s] Simulation ended: %d arrivals", sim.Clock.Format(TimeLayout), sim.Arrivals)
	return sim.Summarize()
}

// scheduleReports places a DayReportEvent at every activation of the report
// schedule in (Start, End].
func (sim *Simulator) scheduleReports() {
	for t := sim.reportSchedule.Next(sim.Start); !t.IsZero() && !t.After(sim.End); t = sim.reportSchedule.Next(t) {
		sim.Schedule(NewDayReportEvent(t))
	}
}

// RunEvents executes events in time order until the queue drains or the next
// event lies beyond End. That event is discarded.
func (sim *Simulator) RunEvents() {
	for sim.queue.Len() > 0 {
		ev, err := sim.queue.PopNext()
		if err != nil {
			panic(fmt.Sprintf("event loop: %v", err))
		}
		if ev.Timestamp().After(sim.End) {
			logrus.Debugf("[sim %s] Discarding %T past end of run", ev.Timestamp().Format(time.DateTime), ev)
			break
		}
		if ev.Timestamp().Before(sim.Clock) {
			panic(fmt.Sprintf("event %s at %s scheduled before clock %s",
				ev.Kind(), ev.Timestamp().Format(time.DateTime), sim.Clock.Format(time.DateTime)))
		}
		sim.Clock = ev.Timestamp()
		logrus.Debugf("[sim %s] Executing %T", sim.Clock.Format(time.DateTime), ev)
		ev.Execute(sim)
		if sim.Observer != nil {
			sim.Observer(ev)
		}
	}
}

func (sim *Simulator) handleArrival(e *ArrivalEvent) {
	now := e.Timestamp()
	st := sim.Station

	req := st.Sampler.GenerateRequest(now, st.Brands, st.MinVolume, st.MaxVolume)
	sim.Arrivals++
	sim.sink.Infof("Created %s", req)

	var candidates []trace.CandidateQueue
	if sim.Trace.Enabled() {
		candidates = sim.candidateSnapshot()
	}
	pump, decision := st.Dispatch(req)
	pump.Routed++
	if sim.Trace.Enabled() {
		sim.Trace.RecordAllocation(trace.AllocationRecord{
			RequestID:  req.ID,
			Clock:      now,
			Brand:      req.Brand,
			Side:       req.Side.String(),
			ChosenPump: pump.ID,
			Reason:     decision.Reason,
			Compatible: decision.Compatible,
			Candidates: candidates,
		})
	}

	if !pump.TryEnqueue(req) {
		req.MarkLost()
		sim.recordLoss(req, pump, trace.CauseQueueFull)
	}

	if !pump.Busy && pump.QueueLen() > 0 {
		sim.Schedule(NewServiceStartEvent(now.Add(ServiceEpsilon), pump.ID))
	}

	next := st.Sampler.SampleInterArrival(now)
	sim.Schedule(NewArrivalEvent(now.Add(next)))
}

func (sim *Simulator) handleServiceStart(e *ServiceStartEvent) {
	now := e.Timestamp()
	st := sim.Station

	pump, ok := st.Pump(e.PumpID)
	if !ok || pump.Busy {
		return
	}
	req := pump.Dequeue()
	if req == nil {
		pump.Busy = false
		return
	}

	if !st.HasStock(req.Brand, req.Volume) {
		req.MarkLost()
		pump.LostCars++
		sim.sink.Infof("[%s] Car %d not served: insufficient fuel (%s).", now.Format(TimeLayout), req.ID, req.Brand)
		sim.recordLoss(req, pump, trace.CauseOutOfStock)
		// the next car in line may want less fuel
		if pump.QueueLen() > 0 {
			sim.Schedule(NewServiceStartEvent(now.Add(ServiceEpsilon), pump.ID))
		}
		return
	}

	pump.Busy = true
	st.Withdraw(req.Brand, req.Volume)
	req.markInService(now)
	sim.waits = append(sim.waits, req.WaitTime().Minutes())

	duration := st.Sampler.ComputeServiceTime(req.Volume)
	sim.sink.Infof("[%s] Pump %d started fueling car %d (%.1f L).", now.Format(TimeLayout), pump.ID, req.ID, req.Volume)
	sim.Schedule(NewServiceEndEvent(now.Add(duration), pump.ID, req))
}

func (sim *Simulator) handleServiceEnd(e *ServiceEndEvent) {
	now := e.Timestamp()

	pump, ok := sim.Station.Pump(e.PumpID)
	if !ok {
		panic(fmt.Sprintf("ServiceEnd at %s references unknown pump %d", now.Format(TimeLayout), e.PumpID))
	}
	req := e.Request
	if req == nil {
		logrus.Warnf("[sim %s] ServiceEnd for pump %d carries no car; ignored", now.Format(TimeLayout), pump.ID)
		return
	}

	pump.Busy = false
	req.MarkServed()
	pump.ServedCars++
	pump.ServedLiters += req.Volume
	sim.sink.Infof("[%s] Pump %d finished serving car %d.", now.Format(TimeLayout), pump.ID, req.ID)

	if pump.QueueLen() > 0 {
		sim.Schedule(NewServiceStartEvent(now.Add(ServiceEpsilon), pump.ID))
	}
}

// handleDayReport only reads station state.
func (sim *Simulator) handleDayReport(e *DayReportEvent) {
	now := e.Timestamp()
	sim.sink.Infof("[%s] Daily report for %s", now.Format(TimeLayout), now.Format(StartLayout))
	for _, p := range sim.Station.Pumps {
		sim.sink.Infof("Pump %d: served=%d, lost=%d, queue=%d, dispensed=%.1f L",
			p.ID, p.ServedCars, p.LostCars, p.QueueLen(), p.ServedLiters)
	}
}

func (sim *Simulator) writeFinalReport() {
	sim.sink.Infof("")
	sim.sink.Infof("Final summary:")

	totalCars, totalLost := 0, 0
	totalLiters := 0.0
	for _, p := range sim.Station.Pumps {
		sim.sink.Infof("Pump %d: served=%d, liters=%.1f, lost=%d", p.ID, p.ServedCars, p.ServedLiters, p.LostCars)
		totalCars += p.ServedCars
		totalLiters += p.ServedLiters
		totalLost += p.LostCars
	}

	sim.sink.Infof("Total cars served: %d", totalCars)
	sim.sink.Infof("Total fuel sold: %.1f L", totalLiters)
	sim.sink.Infof("Total cars lost: %d", totalLost)
	sim.sink.Infof("Station profit: %.2f", sim.Station.TotalProfit())
}

func (sim *Simulator) recordLoss(req *Request, pump *Pump, cause string) {
	if !sim.Trace.Enabled() {
		return
	}
	sim.Trace.RecordLoss(trace.LossRecord{
		RequestID: req.ID,
		Clock:     sim.Clock,
		PumpID:    pump.ID,
		Cause:     cause,
	})
}

func (sim *Simulator) candidateSnapshot() []trace.CandidateQueue {
	out := make([]trace.CandidateQueue, len(sim.Station.Pumps))
	for i, p := range sim.Station.Pumps {
		out[i] = trace.CandidateQueue{PumpID: p.ID, Brand: p.Brand, QueueLen: p.QueueLen(), Busy: p.Busy}
	}
	return out
}
