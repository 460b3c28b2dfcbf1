package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"
)

// target pairs a gateway route with the legacy endpoint it fronts. The two
// paths differ because the gateway renames and versions its surface.
type target struct {
	Name        string `json:"name"`
	GatewayPath string `json:"gatewayPath"`
	LegacyPath  string `json:"legacyPath"`
	Critical    bool   `json:"critical"`
}

type targetsFile struct {
	Targets []target `json:"targets"`
}

type comparison struct {
	Target        target
	GatewayStatus int
	LegacyStatus  int
	CountMatch    bool
	IDsMatch      bool
	Error         error
	GatewayTime   time.Duration
	LegacyTime    time.Duration
}

func main() {
	var (
		gatewayBase string
		legacyBase  string
		targetsPath string
		token       string
		timeout     time.Duration
	)

	flag.StringVar(&gatewayBase, "gateway-base", "http://localhost:8080", "gateway base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:5000", "legacy API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "path to JSON targets file")
	flag.StringVar(&token, "token", "", "bearer token forwarded to both sides")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		results  []comparison
		breaking int
		minor    int
	)

	for _, tgt := range targets {
		comp := compareTarget(client, gatewayBase, legacyBase, token, tgt)
		if comp.Error != nil || !comp.CountMatch || !comp.IDsMatch {
			if tgt.Critical {
				breaking++
			} else {
				minor++
			}
		}
		results = append(results, comp)
	}

	printReport(results)

	fmt.Printf("Breaking diffs: %d, Minor diffs: %d\n", breaking, minor)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func compareTarget(client *http.Client, gatewayBase, legacyBase, token string, tgt target) comparison {
	comp := comparison{Target: tgt}

	gatewayBody, gatewayStatus, gatewayDur, err := fetch(client, gatewayBase, tgt.GatewayPath, token)
	if err != nil {
		comp.Error = fmt.Errorf("gateway request failed: %w", err)
		return comp
	}
	legacyBody, legacyStatus, legacyDur, err := fetch(client, legacyBase, tgt.LegacyPath, token)
	if err != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", err)
		return comp
	}

	comp.GatewayStatus = gatewayStatus
	comp.LegacyStatus = legacyStatus
	comp.GatewayTime = gatewayDur
	comp.LegacyTime = legacyDur

	gatewayItems := itemsOf(gatewayBody, "data")
	legacyItems := itemsOf(legacyBody, "items", "data", "result", "value")

	comp.CountMatch = len(gatewayItems) == len(legacyItems)
	comp.IDsMatch = reflect.DeepEqual(idsOf(gatewayItems), idsOf(legacyItems))
	return comp
}

func fetch(client *http.Client, base, path, token string) ([]byte, int, time.Duration, error) {
	if client == nil {
		return nil, 0, 0, errors.New("nil client")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := strings.TrimRight(base, "/") + path

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, 0, err
	}
	return body, resp.StatusCode, time.Since(start), nil
}

// itemsOf decodes a response body and unwraps the list payload. The gateway
// always answers with a data envelope; the legacy API varies its wrapper
// key, so callers pass the set of keys to probe.
func itemsOf(body []byte, keys ...string) []map[string]interface{} {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil
	}

	arr, ok := decoded.([]interface{})
	if !ok {
		obj, isObj := decoded.(map[string]interface{})
		if !isObj {
			return nil
		}
		for _, key := range keys {
			if inner, isArr := obj[key].([]interface{}); isArr {
				arr = inner
				break
			}
		}
	}

	items := make([]map[string]interface{}, 0, len(arr))
	for _, item := range arr {
		if obj, isObj := item.(map[string]interface{}); isObj {
			items = append(items, obj)
		}
	}
	return items
}

func idsOf(items []map[string]interface{}) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		for _, key := range []string{"id", "academyId", "branchId", "courseId", "studentId"} {
			if v, ok := item[key]; ok && v != nil {
				ids = append(ids, fmt.Sprintf("%v", v))
				break
			}
		}
	}
	sort.Strings(ids)
	return ids
}

func printReport(results []comparison) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.CountMatch || !res.IDsMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s\n", status, res.Target.Name)
		fmt.Printf("  Gateway: %s -> %d (%s)\n", res.Target.GatewayPath, res.GatewayStatus, res.GatewayTime)
		fmt.Printf("  Legacy:  %s -> %d (%s)\n", res.Target.LegacyPath, res.LegacyStatus, res.LegacyTime)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
		} else {
			fmt.Printf("  Count match: %t | ID match: %t | Critical: %t\n", res.CountMatch, res.IDsMatch, res.Target.Critical)
		}
	}
}
