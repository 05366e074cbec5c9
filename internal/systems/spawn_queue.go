package systems

import (
	"container/heap"

	"tapdash-server/internal/domain"
)

// ScheduledSpawn - отложенное появление препятствия (добивка серии).
type ScheduledSpawn struct {
	Due   uint64              // тик, на котором препятствие появится
	Type  domain.ObstacleType // тип выбран заранее
	Index int                 // индекс в куче
}

// SpawnQueue реализует heap.Interface: сверху ближайший по времени спавн.
type SpawnQueue []*ScheduledSpawn

func (q SpawnQueue) Len() int { return len(q) }

func (q SpawnQueue) Less(i, j int) bool {
	return q[i].Due < q[j].Due
}

func (q SpawnQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].Index = i
	q[j].Index = j
}

func (q *SpawnQueue) Push(x any) {
	item := x.(*ScheduledSpawn)
	item.Index = len(*q)
	*q = append(*q, item)
}

func (q *SpawnQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*q = old[:n-1]
	return item
}

// Schedule ставит спавн в очередь.
func (q *SpawnQueue) Schedule(due uint64, t domain.ObstacleType) {
	heap.Push(q, &ScheduledSpawn{Due: due, Type: t})
}

// PopDue снимает все спавны, срок которых наступил к тику now, в порядке времени.
func (q *SpawnQueue) PopDue(now uint64) []*ScheduledSpawn {
	var due []*ScheduledSpawn
	for q.Len() > 0 && (*q)[0].Due <= now {
		due = append(due, heap.Pop(q).(*ScheduledSpawn))
	}
	return due
}

// Clear очищает очередь (reset сессии).
func (q *SpawnQueue) Clear() {
	*q = (*q)[:0]
}
