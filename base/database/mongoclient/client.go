package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/x-xyz/dustsweep/base/log"
)

const (
	mgSocketTimeout = 60 * time.Second
	mgConnTimeout   = 10 * time.Second
)

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

// Param describes one archive connection
type Param struct {
	URI                string
	AuthDBName         string
	DBName             string
	SSL                bool
	SetSafe            bool
	PoolSizeMultiplier float64
}

// MustConnectMongoClient returns MongoDB connection client if connected successfully, or it will trigger panic
func MustConnectMongoClient(p Param) *Client {
	cli, err := ConnectMongoClient(p)
	if err != nil {
		log.Log().WithFields(log.Fields{"dbName": p.DBName, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// ConnectMongoClient returns mongo driver client
func ConnectMongoClient(p Param) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mgConnTimeout)
	defer cancel()

	connSetting, err := connstring.Parse(p.URI)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"dbName": p.DBName,
			"err":    err,
		}).Error("fail to parse connstring")
		return nil, err
	}

	clientOpts := options.Client().ApplyURI(p.URI).SetSocketTimeout(mgSocketTimeout)

	// If AuthSource is not set in connstring, set it to authDBName
	if connSetting.Username != "" && connSetting.AuthSource == "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              p.AuthDBName,
		})
	}

	multiplier := p.PoolSizeMultiplier
	if multiplier <= 0 {
		multiplier = 4
	}
	// each host keeps its own pool, so the total is split across hosts
	poolSize := int(float64(runtime.NumCPU()) * multiplier)
	if hosts := len(connSetting.Hosts); hosts > 0 {
		poolSize = (poolSize + hosts - 1) / hosts
	}
	clientOpts.SetMinPoolSize(uint64(poolSize / 4))
	clientOpts.SetMaxPoolSize(uint64(poolSize))

	if p.SSL {
		clientOpts.SetTLSConfig(&tls.Config{})
	}
	if p.SetSafe {
		clientOpts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}
	clientOpts.SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"mongoHosts": connSetting.Hosts,
			"dbName":     p.DBName,
			"err":        err,
		}).Error("fail to connect mongo db")
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Log().WithFields(log.Fields{
			"mongoHosts": connSetting.Hosts,
			"dbName":     p.DBName,
			"err":        err,
		}).Error("fail to ping mongo db")
		return nil, err
	}

	log.Log().WithFields(log.Fields{
		"mongoHosts": connSetting.Hosts,
		"db":         p.DBName,
		"poolSize":   poolSize,
	}).Info("mongo connected")
	return &Client{
		Client: client,
		DbName: p.DBName,
	}, nil
}
