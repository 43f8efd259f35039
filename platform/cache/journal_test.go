package cache

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/gomodule/redigo/redis"
)

// fakeConn implements the list commands used by the journal.
type fakeConn struct {
	lists   map[string][]string
	expires map[string]int
	fail    bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{lists: map[string][]string{}, expires: map[string]int{}}
}

func (c *fakeConn) Get() redis.Conn { return c }

func (c *fakeConn) Close() error { return nil }
func (c *fakeConn) Err() error   { return nil }
func (c *fakeConn) Flush() error { return nil }

func (c *fakeConn) Send(string, ...interface{}) error { return errors.New("not supported") }

func (c *fakeConn) Receive() (interface{}, error) { return nil, errors.New("not supported") }

func (c *fakeConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	if c.fail {
		return nil, errors.New("connection refused")
	}
	switch cmd {
	case "RPUSH":
		k := args[0].(string)
		for _, v := range args[1:] {
			c.lists[k] = append(c.lists[k], v.(string))
		}
		return int64(len(c.lists[k])), nil
	case "LRANGE":
		var out []interface{}
		for _, v := range c.lists[args[0].(string)] {
			out = append(out, []byte(v))
		}
		return out, nil
	case "EXPIRE":
		c.expires[args[0].(string)] = args[1].(int)
		return int64(1), nil
	case "DEL":
		delete(c.lists, args[0].(string))
		return int64(1), nil
	}
	return nil, errors.New("unknown command " + cmd)
}

func TestJournalRoundTrip(t *testing.T) {
	conn := newFakeConn()
	j := NewJournal(conn, time.Hour)
	events := []engine.Event{
		{Kind: engine.EventRolled, Turn: 1, Player: 1, Amount: 6},
		{Kind: engine.EventPurchased, Turn: 1, Player: 1, Amount: 384, Position: 7, Message: "Harbor Street"},
	}
	obs := j.Observer("t1")
	for _, e := range events {
		obs.Notify(e)
	}

	got, err := j.Events("t1")
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if !reflect.DeepEqual(got, events) {
		t.Fatalf("Events() = %+v, want %+v", got, events)
	}
	if conn.expires["t1.log"] != 3600 {
		t.Fatalf("expire = %d, want 3600", conn.expires["t1.log"])
	}

	if err := j.Drop("t1"); err != nil {
		t.Fatal(err)
	}
	if got, _ := j.Events("t1"); len(got) != 0 {
		t.Fatalf("Events() after Drop = %v", got)
	}
}

func TestJournalWriteFailureDoesNotPanic(t *testing.T) {
	conn := newFakeConn()
	conn.fail = true
	j := NewJournal(conn, 0)
	j.Observer("t1").Notify(engine.Event{Kind: engine.EventTurnEnded})
	if err := j.Append("t1", engine.Event{}); err == nil {
		t.Fatal("Append() expected error")
	}
}
