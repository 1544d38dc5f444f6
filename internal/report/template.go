package report

// reportTemplate is the standalone Chart.js report. It has no server
// dependency: data is embedded and the chart library loads from the CDN, so
// the file opens anywhere.
const reportTemplate = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="UTF-8">
<title>{{.CompanyName}} 주식/재무제표 분석 리포트</title>
<style>
  body { font-family: 'Nanum Gothic', sans-serif; line-height: 1.5; }
  .checkbox-group label { margin-right: 12px; display: inline-block; margin-bottom: 6px; }
  .muted { color: #666; }
</style>
</head>
<body>
  <h1>{{.CompanyName}} 분석 리포트</h1>
  <p>리포트 생성: {{.Generated}}</p>
{{if .Insight}}
  <h2>요약</h2>
  <p>{{.Insight}}</p>
{{end}}
  <h2>주가 지표</h2>
  <div id="stockSec">
    <div class="checkbox-group" id="stockCheckboxes"></div>
    <canvas id="stockChart" height="100"></canvas>
    <p id="stockEmpty" class="muted" style="display:none;">표시할 주가 데이터가 없습니다.</p>
  </div>

  <h2>재무제표 지표 (단위: 조원)</h2>
  <div id="fsSec">
    <div class="checkbox-group" id="fsCheckboxes"></div>
    <canvas id="fsChart" height="100"></canvas>
    <p id="fsEmpty" class="muted" style="display:none;">표시할 재무 데이터가 없습니다.</p>
  </div>
{{if .ExcelFile}}
  <h2>다운로드</h2>
  <a href="{{.ExcelFile}}" download>엑셀 다운로드</a>
{{end}}
  <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
  <script>
    const stockData = {{.PriceJSON}};
    const fsData = {{.StatementJSON}};
    const stockDefaults = {{.PriceDefaults}};
    const fsDefaults = {{.StatementDefaults}};

    function getRandomColor() {
      return 'hsl(' + Math.floor(360 * Math.random()) + ',70%,50%)';
    }
    function firstKey(o) {
      const ks = Object.keys(o || {}); return ks.length ? ks[0] : null;
    }
    function buildCheckboxes(data, defaults, boxId, chartId, emptyId) {
      const box = document.getElementById(boxId);
      if (!firstKey(data)) {
        document.getElementById(chartId).style.display = 'none';
        document.getElementById(emptyId).style.display = 'block';
        return;
      }
      Object.keys(data).forEach(k => {
        const checked = defaults.includes(k) ? ' checked' : '';
        const label = document.createElement('label');
        label.innerHTML = '<input type="checkbox" value="' + k + '"' + checked + '> ' + k;
        box.appendChild(label);
      });
    }

    buildCheckboxes(stockData, stockDefaults, 'stockCheckboxes', 'stockChart', 'stockEmpty');
    buildCheckboxes(fsData, fsDefaults, 'fsCheckboxes', 'fsChart', 'fsEmpty');

    let stockChart, fsChart;

    function updateChart(data, boxId, canvasId, current) {
      if (!firstKey(data)) return current;
      const checked = Array.from(document.querySelectorAll('#' + boxId + ' input:checked')).map(x => x.value);
      const labels = Object.keys(data[firstKey(data)] || {});
      const datasets = checked.map(m => {
        return { label: m, data: Object.values(data[m] || {}), borderColor: getRandomColor(), fill: false, tension: 0.3 };
      });
      if (current) current.destroy();
      return new Chart(document.getElementById(canvasId), {
        type: 'line',
        data: { labels, datasets },
        options: { spanGaps: true, animation: false }
      });
    }

    function updateStockChart() { stockChart = updateChart(stockData, 'stockCheckboxes', 'stockChart', stockChart); }
    function updateFsChart() { fsChart = updateChart(fsData, 'fsCheckboxes', 'fsChart', fsChart); }

    document.querySelectorAll('#stockCheckboxes input').forEach(cb => cb.addEventListener('change', updateStockChart));
    document.querySelectorAll('#fsCheckboxes input').forEach(cb => cb.addEventListener('change', updateFsChart));

    updateStockChart();
    updateFsChart();
  </script>
</body>
</html>
`
