package mqtt

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/netip"
	"runtime"
	"time"

	"github.com/soypat/lneto/tcp"
	mqtt "github.com/soypat/natiu-mqtt"

	"github.com/harveysanders/sevenseg/segmqtt/cyw43439"
	"github.com/harveysanders/sevenseg/segmqtt/display"
	"github.com/harveysanders/sevenseg/segmqtt/mqtt/wire"
)

// Payloads longer than this are not display values and are ignored.
const maxPayload = 32

var pubFlags, _ = mqtt.NewPublishFlags(mqtt.QoS0, false, false)

// Client subscribes to CommandTopic and forwards every value received there
// to the display. The result of each Set is published to StateTopic.
type Client struct {
	ID                string
	CommandTopic      string
	StateTopic        string
	Timeout           time.Duration
	TCPBufSize        int
	Logger            *slog.Logger
	HeartbeatInterval time.Duration
	Username          string // MQTT broker username (optional)
	Password          string // MQTT broker password (optional, requires Username)
}

// ConnectAndServe connects to the broker at addr and keeps the subscription
// alive, reconnecting after errors. It only returns if addr cannot be
// resolved or the TCP connection cannot be configured.
func (c *Client) ConnectAndServe(
	stack *cyw43439.Stack,
	addr string,
	values chan<- int,
	shown <-chan display.Shown,
) error {
	const pollTime = 5 * time.Millisecond

	c.Logger.Info("mqtt:address", slog.String("addr", addr))

	mqttHost, port, err := wire.SplitHostPort(addr)
	if err != nil {
		return errors.New("parsing host:port from " + addr + ": " + err.Error())
	}

	lnetoStack := stack.LnetoStack()
	rstack := lnetoStack.StackRetrying(pollTime)

	var mqttAddr netip.Addr
	if parsedAddr, err := netip.ParseAddr(mqttHost); err == nil {
		mqttAddr = parsedAddr
	} else {
		c.Logger.Info("dns:resolving", slog.String("host", mqttHost))
		addrs, err := rstack.DoLookupIP(mqttHost, 5*time.Second, 3)
		if err != nil {
			return errors.New("dns lookup for " + mqttHost + ": " + err.Error())
		}
		if len(addrs) == 0 {
			return errors.New("dns lookup for " + mqttHost + ": no addresses returned")
		}
		mqttAddr = addrs[0]
	}
	serverAddr := netip.AddrPortFrom(mqttAddr, port)
	c.Logger.Info("mqtt:resolved", slog.String("addr", serverAddr.String()))

	cfg := mqtt.ClientConfig{
		Decoder: mqtt.DecoderNoAlloc{UserBuffer: make([]byte, 1024)},
		OnPub: func(_ mqtt.Header, varPub mqtt.VariablesPublish, r io.Reader) error {
			c.onCommand(varPub.TopicName, r, values)
			return nil
		},
	}
	var varconn mqtt.VariablesConnect
	varconn.SetDefaultMQTT([]byte(c.ID))
	if c.Username != "" {
		varconn.Username = []byte(c.Username)
		if c.Password != "" {
			varconn.Password = []byte(c.Password)
		}
	}
	varsub := mqtt.VariablesSubscribe{
		TopicFilters: []mqtt.SubscribeRequest{
			{TopicFilter: []byte(c.CommandTopic), QoS: mqtt.QoS0},
		},
	}
	pubVar := mqtt.VariablesPublish{TopicName: []byte(c.StateTopic)}

	mqttClient := mqtt.NewClient(cfg)

	var conn tcp.Conn
	err = conn.Configure(tcp.ConnConfig{
		RxBuf:             make([]byte, c.TCPBufSize),
		TxBuf:             make([]byte, c.TCPBufSize),
		TxPacketQueueSize: 3,
	})
	if err != nil {
		return errors.New("tcp configure:" + err.Error())
	}

	closeConn := func(reason string) {
		c.Logger.Error("tcpconn:closing", slog.String("reason", reason))
		conn.Close()
		for i := 0; i < 50 && !conn.State().IsClosed(); i++ {
			time.Sleep(100 * time.Millisecond)
		}
		conn.Abort()
	}

	for {
		localPort := uint16(lnetoStack.Prand32()>>17) + 1024
		c.Logger.Info("socket:dialing", slog.Uint64("localPort", uint64(localPort)))
		err = rstack.DoDialTCP(&conn, localPort, serverAddr, 10*time.Second, 3)
		if err != nil {
			closeConn("dial failed: " + err.Error())
			time.Sleep(2 * time.Second)
			continue
		}
		c.Logger.Info("tcp:connected", slog.String("state", conn.State().String()))

		conn.SetDeadline(time.Now().Add(c.Timeout))
		err = mqttClient.StartConnect(&conn, &varconn)
		if err != nil {
			closeConn("connect failed: " + err.Error())
			continue
		}
		if !c.await(mqttClient, mqttClient.IsConnected) {
			c.Logger.Error("mqtt:connect-failed", slog.Any("reason", mqttClient.Err()))
			closeConn("connect timed out")
			continue
		}

		varsub.PacketIdentifier = uint16(lnetoStack.Prand32())
		conn.SetDeadline(time.Now().Add(c.Timeout))
		err = mqttClient.StartSubscribe(varsub)
		if err != nil {
			closeConn("subscribe failed: " + err.Error())
			continue
		}
		c.Logger.Info("mqtt:subscribed", slog.String("topic", c.CommandTopic))

		c.serve(mqttClient, &conn, &pubVar, lnetoStack.Prand32, shown)

		c.Logger.Error("mqtt:disconnected", slog.Any("reason", mqttClient.Err()))
		closeConn("disconnected")
		runtime.Gosched()
	}
}

// await polls the broker until done reports true or 5 seconds pass.
func (c *Client) await(mqttClient *mqtt.Client, done func() bool) bool {
	for retries := 50; retries > 0 && !done(); retries-- {
		time.Sleep(100 * time.Millisecond)
		if err := mqttClient.HandleNext(); err != nil {
			c.Logger.Error("mqtt:handle-next-failed", slog.String("err", err.Error()))
		}
	}
	return done()
}

// serve handles incoming commands and publishes display state until the
// connection drops.
func (c *Client) serve(
	mqttClient *mqtt.Client,
	conn *tcp.Conn,
	pubVar *mqtt.VariablesPublish,
	prand func() uint32,
	shown <-chan display.Shown,
) {
	heartbeat := time.NewTicker(c.HeartbeatInterval)
	defer heartbeat.Stop()
	for mqttClient.IsConnected() {
		select {
		case s := <-shown:
			payload, err := json.Marshal(s)
			if err != nil {
				c.Logger.Error("mqtt:marshal-failed", slog.Any("reason", err))
				continue
			}
			conn.SetDeadline(time.Now().Add(c.Timeout))
			pubVar.PacketIdentifier = uint16(prand())
			if err := mqttClient.PublishPayload(pubFlags, *pubVar, payload); err != nil {
				c.Logger.Error("mqtt:publish-failed", slog.Any("reason", err))
				continue
			}
			c.Logger.Info("mqtt:state-published", slog.Int("value", s.Value))
		case <-heartbeat.C:
			// Read pending commands and keep the connection alive.
			conn.SetDeadline(time.Now().Add(c.Timeout))
			if err := mqttClient.HandleNext(); err != nil {
				c.Logger.Error("mqtt:handle-next-failed", slog.String("err", err.Error()))
			}
		default:
			// TinyGo runs on a single core, so yield to the stack and display goroutines.
			runtime.Gosched()
		}
	}
}

// onCommand decodes a command payload and queues it for the display.
// Every path reads the payload to the end; natiu-mqtt disconnects otherwise.
func (c *Client) onCommand(topic []byte, r io.Reader, values chan<- int) {
	if string(topic) != c.CommandTopic {
		c.Logger.Info("mqtt:ignored", slog.String("topic", string(topic)))
		if err := wire.Discard(r); err != nil {
			c.Logger.Error("mqtt:read-payload", slog.String("err", err.Error()))
		}
		return
	}
	v, err := wire.ReadValue(r, maxPayload)
	if err != nil {
		c.Logger.Error("mqtt:bad-value", slog.String("err", err.Error()))
		return
	}
	if !display.Send(values, v) {
		c.Logger.Error("mqtt:display-busy", slog.Int("value", v))
	}
}
