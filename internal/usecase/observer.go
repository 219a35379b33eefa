package usecase

// Observer はユースケースの処理結果をメトリクスへ伝える
type Observer interface {
	ObserveAggregation(criterion string, precision, zones int)
	ObserveCache(hit bool)
	ObserveFetchFailure(collection string)
	ObserveAudit(anomalous int)
}

type noopObserver struct{}

func (noopObserver) ObserveAggregation(string, int, int) {}
func (noopObserver) ObserveCache(bool)                   {}
func (noopObserver) ObserveFetchFailure(string)          {}
func (noopObserver) ObserveAudit(int)                    {}

func observerOrNoop(o Observer) Observer {
	if o == nil {
		return noopObserver{}
	}
	return o
}
