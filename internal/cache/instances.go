package cache

import "time"

// Instances holds the process-wide caches. They are built once at startup and
// passed to the components that need them.
type Instances struct {
	AI        *TTL[any]
	UserData  *TTL[any]
	Analytics *TTL[any]
}

func NewInstances() *Instances {
	return &Instances{
		AI:        NewTTL[any](Options{DefaultTTL: 30 * time.Minute, Capacity: 1000}),
		UserData:  NewTTL[any](Options{DefaultTTL: 10 * time.Minute, Capacity: 500}),
		Analytics: NewTTL[any](Options{DefaultTTL: 5 * time.Minute, Capacity: 100}),
	}
}

func (i *Instances) Start() {
	if i == nil {
		return
	}
	i.AI.Start()
	i.UserData.Start()
	i.Analytics.Start()
}

func (i *Instances) Close() {
	if i == nil {
		return
	}
	i.AI.Close()
	i.UserData.Close()
	i.Analytics.Close()
}
