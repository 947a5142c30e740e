package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/oarkflow/wordmap"
	"github.com/oarkflow/wordmap/lib"
	"github.com/oarkflow/wordmap/web"
)

var (
	hostPtr     = flag.String("host", "0.0.0.0", "Domain name or IP")
	portPtr     = flag.String("port", "3000", "Port available to be used on server")
	filePtr     = flag.String("file", "", "Mapping file to preload on startup")
	indexKeyPtr = flag.String("key", "", "Engine key for the preloaded mapping file")
)

func main() {
	flag.Parse()
	addr := fmt.Sprintf("%s:%s", *hostPtr, *portPtr)
	if *filePtr != "" && *indexKeyPtr != "" {
		mappings, err := lib.ReadMappingFile(*filePtr)
		if err != nil {
			panic(err)
		}
		engine := wordmap.GetOrSetEngine(*indexKeyPtr, &wordmap.Config{})
		engine.LoadMappingsWithPool(mappings, runtime.NumCPU(), 1000)
		fmt.Println("Loaded", *indexKeyPtr)
	}
	web.StartServer(addr)
}
