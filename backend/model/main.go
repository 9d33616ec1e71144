package model

import (
	"evidentia/backend/common"

	"github.com/burugo/thing"
	redisCache "github.com/burugo/thing/drivers/cache/redis"
	"github.com/burugo/thing/drivers/db/sqlite"
)

func createRootAccountIfNeed() error {
	userThing, err := thing.Use[*User]()
	if err != nil {
		return err
	}
	users, err := userThing.Query(thing.QueryParams{}).Fetch(0, 1)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		common.SysLog("no user exists, create a root user for you: email is root@localhost, password is 123456")
		hashedPassword, err := common.Password2Hash("123456")
		if err != nil {
			return err
		}
		rootUser := &User{
			Email:        "root@localhost",
			Password:     hashedPassword,
			FullName:     "Root User",
			Organization: common.SystemName,
			Role:         common.RoleRootUser,
			Status:       common.UserStatusEnabled,
		}
		if err := userThing.Save(rootUser); err != nil {
			return err
		}
	}
	return nil
}

func InitDB() (err error) {
	dbAdapter, err := sqlite.NewSQLiteAdapter(common.SQLitePath)
	if err != nil {
		common.FatalLog(err)
		return err
	}
	var cacheClient thing.CacheClient = nil
	if common.RedisEnabled && common.RDB != nil {
		cacheClient, err = redisCache.NewClient(common.RDB, nil)
		if err != nil {
			return err
		}
	}
	thing.Configure(dbAdapter, cacheClient)

	err = thing.AutoMigrate(&User{}, &Case{}, &CaseFile{}, &ContactMessage{}, &Option{})
	if err != nil {
		return err
	}

	if err := UserInit(); err != nil {
		return err
	}
	if err := CaseInit(); err != nil {
		return err
	}
	if err := CaseFileInit(); err != nil {
		return err
	}
	if err := ContactMessageInit(); err != nil {
		return err
	}
	if err := OptionInit(); err != nil {
		return err
	}
	if err := InitOptionMapFromDB(); err != nil {
		return err
	}

	return createRootAccountIfNeed()
}

func CloseDB() error {
	// Thing ORM manages its connection pool; nothing to close explicitly.
	return nil
}
