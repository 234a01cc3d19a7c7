package main

import (
	"net/http"

	"github.com/chirpnet/chirp/auth"
	"github.com/chirpnet/chirp/media"
	"github.com/chirpnet/chirp/server"
	"github.com/chirpnet/chirp/server/middlewares"
	"github.com/chirpnet/chirp/store"
	. "github.com/chirpnet/chirp/utils"
	"github.com/chirpnet/chirp/utils/dotenv"
	. "github.com/chirpnet/chirp/utils/flag"
	. "github.com/chirpnet/chirp/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func cleanup() {
	CloseProfiler()
	CloseTracer()
	Log.Info("api server shutdown")
}

func newFileStore() media.FileStore {
	if IsDevelopment {
		fileStore, err := media.NewLocalFileStore(media.DevS3Bucket)
		if err != nil {
			Log.Fatalf("fail to create local file store: %v", err)
		}
		return fileStore
	}
	fileStore, err := media.NewS3FileStore(media.ProdS3Bucket)
	if err != nil {
		Log.Fatalf("fail to create s3 file store: %v", err)
	}
	return fileStore
}

func main() {
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := GetDBConnection()
	if err != nil {
		Log.Fatalf("fail to connect to database: %v", err)
	}
	DatabaseSetupAndMigration(db)

	tokenStore, err := auth.NewTokenStore()
	if err != nil {
		Log.Fatalf("fail to connect to redis: %v", err)
	}
	authService := auth.NewService(store.NewStore(db), tokenStore)

	// Middlewares
	middlewares.Setup(authService)

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(ServiceName))

	apiServer := server.NewServer(db, authService, newFileStore())
	apiServer.RegisterRoutes(router)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	Log.Info("api server starts up")
	router.Run(":8080")
}
